// Package bridge runs middleware of one convention inside a pipeline of the other.
//
// UseEnv embeds dictionary middleware in a typed pipeline. Each typed context
// is projected into a live environment, so both views share state:
//
//	h := host.New[*host.Context]()
//	h.Use(bridge.MustUseEnv[*host.Context](func(add env.AddFunc) {
//		add(legacyAuth)
//		add(legacyAudit)
//	}))
//
// UseTyped embeds typed middleware in a dictionary pipeline. The typed
// context published by the host is reused when it has the requested type;
// otherwise an EnvContext facade is built over the environment and its Items
// are kept in sync at every crossing:
//
//	h := host.NewEnv()
//	h.Use(bridge.MustUseTyped(func(b *bridge.Builder[*bridge.EnvContext]) {
//		b.Use(middleware.RequestID[*bridge.EnvContext]())
//	}, bridge.WithServices[*bridge.EnvContext](registry)))
//
// Both adapters compose their sub-chain once. Registering nothing yields a
// pass-through; nil middleware and unsatisfiable context types are reported
// when the adapter is built, not per request.
package bridge
