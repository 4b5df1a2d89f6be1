// Package upgrade bridges protocol-upgrade negotiation between a callback
// shape and a future shape while keeping the two-phase contract: negotiate
// now, complete later.
//
// # State machine
//
//	NoUpgradeRequested --Accept/AcceptFuture--> Negotiated --Complete--> Completed
//	                                                      \--Fail-----> Failed
//
// A request that never negotiates stays in NoUpgradeRequested, which is a
// legitimate terminal state. A negotiation that the transport never completes
// simply never runs its continuation.
//
// # Shapes
//
// The callback shape registers a continuation:
//
//	err := n.Accept(&upgrade.Options{Subprotocol: "chat"}, func(conn upgrade.Conn) error {
//		return serve(conn)
//	})
//
// The future shape returns a future resolved with the connection:
//
//	fut := n.AcceptFuture(nil)
//	fut.Then(func(conn upgrade.Conn, err error) {
//		if err == nil {
//			go serve(conn)
//		}
//	})
//
// Both shapes register a continuation on the same Negotiation, so invoking
// either shape twice, or both, reports ErrAlreadyNegotiated. Negotiating after
// Seal reports ErrRequestCompleted.
//
// # Transport side
//
// The transport drives phase 2 once the handshake is done:
//
//	if n.Pending() {
//		conn, err := upgrader.Upgrade(w, r, n.Options().Header)
//		if err != nil {
//			n.Fail(err)
//			return
//		}
//		err = n.Complete(conn)
//	}
//
// # Adapters
//
// FromCallback and FromFuture wrap a negotiator that only speaks one shape
// and expose it in both, each with its own at-most-once guard.
package upgrade
