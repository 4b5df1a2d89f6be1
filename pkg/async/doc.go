// Package async provides a settle-once Future for values produced later.
//
// A Future is created unsettled by its producer, handed to consumers, and
// settled exactly once with Resolve or Reject. Consumers either block on it
// with Await (bounded by a context) or register a continuation with Then.
//
// # Usage
//
//	f := async.New[*websocket.Conn]()
//
//	// consumer
//	f.Then(func(conn *websocket.Conn, err error) {
//		if err != nil {
//			return
//		}
//		serve(conn)
//	})
//
//	// producer
//	f.Resolve(conn)
//
// Blocking with a deadline:
//
//	conn, err := f.AwaitWithTimeout(5 * time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("upgrade not completed in time")
//	}
//
// # Concurrency Safety
//
// All methods are safe for concurrent use. Continuations registered with Then
// run on the goroutine that settles the future, in registration order, after
// the internal lock is released.
package async
