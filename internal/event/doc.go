// Package event provides a pub-sub event bus that carries the widget's
// domain events to observers such as metrics collectors and reset sinks.
//
// The widget publishes; it never learns who listens. Handlers run
// synchronously on the publishing goroutine, specific subscribers first and
// wildcard subscribers after, each group in registration order. A panicking
// handler is recovered and logged so one observer cannot starve the rest.
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - clap.accepted, clap.rejected
//   - reset.applied
//   - target.mounted
//   - timeline.built, timeline.replayed
//   - upload.started, upload.completed
//
// # Basic Usage
//
//	bus := event.NewBus()
//	bus.Subscribe(event.TypeClapAccepted, func(e event.Event) {
//	    clapped := e.(event.ClapAcceptedEvent)
//	    fmt.Println(clapped.State.Count)
//	})
//	bus.Publish(event.NewClapAcceptedEvent("clap-1", state))
package event
