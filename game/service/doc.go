// Package service provides the business logic layer for the 2048 server.
//
// The service layer sits between the transports (HTTP, WebSocket, MCP, the
// joystick poller) and the session coordinator. It owns boundary
// validation: raw direction strings become engine.Direction values here or
// get rejected with ErrInvalidDirection. It also pushes score updates to
// the configured display after every mutation.
//
// The display is updated outside the coordinator's lock: a slow panel can
// never stall a move.
//
// Usage:
//
//	coord := session.NewCoordinator()
//	svc := service.NewGameService(coord, display.NewLogDisplay(logger), logger)
//
//	result, err := svc.Move(ctx, "left")
//	if errors.Is(err, service.ErrInvalidDirection) {
//		// reject at the transport boundary
//	}
package service
