// Package websocket provides the WebSocket transport for the 2048 server.
//
// The package uses a hub-and-spoke model: a central Hub tracks every
// connected browser and pushes the full game snapshot to all of them after
// each state change, so clients do not have to poll.
//
// There is exactly one game per process, so the hub keeps a flat client
// set rather than per-session groups. Slow clients whose send buffers fill
// up are disconnected instead of blocking the broadcast.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	// from an HTTP handler
//	hub.ServeWS(w, r)
//
//	// after a state change
//	hub.BroadcastSnapshot(snap)
package websocket
