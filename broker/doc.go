// Package broker distributes values to groups of observers through named
// topics. It is the facade most applications use instead of wiring subjects
// by hand: a topic is a multicast subject with a registry entry, per
// subscriber buffering, and a disconnect policy for consumers that stop
// keeping up.
//
// Key behaviors:
//   - Topics are created on first use and shared by name afterwards.
//   - Every subscription gets a buffered channel and a forwarding goroutine,
//     so one stalled observer never blocks the others. A subscriber whose
//     buffer stays full past the configured timeout is disconnected.
//   - Subscriptions are bound to a context. Cancelling it unsubscribes, and
//     Unsubscribe cancels it, whichever happens first.
//   - Closing or failing a topic delivers the terminal to every subscriber,
//     and late subscribers observe that terminal immediately.
//
// Example usage:
//
//	hub := broker.Local[string]()
//	topic := hub.Topic(ctx, "ticker.updates")
//
//	sub, err := topic.Subscribe(ctx, murmur.NewObserver(
//		func(v string) { fmt.Println("got", v) },
//		nil, nil,
//	))
//	if err != nil {
//		return err
//	}
//	defer sub.Unsubscribe()
//
//	if err := topic.Publish(ctx, "hello"); err != nil {
//		return err
//	}
package broker
