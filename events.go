package feather2d

import (
	"unsafe"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
)

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
)

// pairKey identifies a pair of bodies regardless of their order
type pairKey struct {
	bodyA *actor.Body
	bodyB *actor.Body
}

// makePairKey orders the bodies by address
func makePairKey(bodyA, bodyB *actor.Body) pairKey {
	ptrA := uintptr(unsafe.Pointer(bodyA))
	ptrB := uintptr(unsafe.Pointer(bodyB))

	if ptrB < ptrA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

func (p pairKey) isTrigger() bool {
	return p.bodyA.IsTrigger || p.bodyB.IsTrigger
}

// EventType selects which listeners an event is delivered to
type EventType uint8

// Event is delivered to the listeners subscribed to its Type
type Event interface {
	Type() EventType
}

// TriggerEnterEvent is raised on the first step a trigger overlaps another body
type TriggerEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// CollisionEnterEvent is raised on the first step two solid bodies overlap
type CollisionEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

type EventListener func(event Event)

// Events compares the overlapping pairs of two consecutive steps to raise the
// Enter, Stay and Exit events. Its zero value is ready to use.
type Events struct {
	listeners map[EventType][]EventListener

	// Filled while a step runs, delivered by flush at its end
	buffer []Event

	// Pairs overlapping during the previous and the current step.
	// The slices hold them in recording order, which is the order events are raised in.
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
	previousOrder       []pairKey
	currentOrder        []pairKey
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

// init makes the zero value usable
func (e *Events) init() {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	if e.previousActivePairs == nil {
		e.previousActivePairs = make(map[pairKey]bool)
	}
	if e.currentActivePairs == nil {
		e.currentActivePairs = make(map[pairKey]bool)
	}
}

// Subscribe registers listener for every event of eventType.
// Listeners run on the goroutine calling World.Step, after the positions are solved.
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.init()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions marks every contact pair active for this step, and returns
// the constraints to resolve: contacts involving a trigger are only reported.
func (e *Events) recordCollisions(constraints []*constraint.ContactConstraint) []*constraint.ContactConstraint {
	e.init()

	n := 0
	for _, c := range constraints {
		pair := makePairKey(c.BodyA, c.BodyB)
		if !e.currentActivePairs[pair] {
			e.currentActivePairs[pair] = true
			e.currentOrder = append(e.currentOrder, pair)
		}

		if !c.BodyA.IsTrigger && !c.BodyB.IsTrigger {
			constraints[n] = c
			n++
		}
	}

	return constraints[:n]
}

// forget drops every tracked pair involving body
func (e *Events) forget(body *actor.Body) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}

	n := 0
	for _, pair := range e.previousOrder {
		if pair.bodyA != body && pair.bodyB != body {
			e.previousOrder[n] = pair
			n++
		}
	}
	e.previousOrder = e.previousOrder[:n]
}

// processCollisionEvents buffers Enter and Stay for the current pairs, then Exit
// for the previous pairs that are gone, and makes the current step the previous one
func (e *Events) processCollisionEvents() {
	for _, pair := range e.currentOrder {
		if e.previousActivePairs[pair] {
			if pair.isTrigger() {
				e.buffer = append(e.buffer, TriggerStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		} else {
			if pair.isTrigger() {
				e.buffer = append(e.buffer, TriggerEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		}
	}

	for _, pair := range e.previousOrder {
		if !e.currentActivePairs[pair] {
			if pair.isTrigger() {
				e.buffer = append(e.buffer, TriggerExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			} else {
				e.buffer = append(e.buffer, CollisionExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			}
		}
	}

	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	e.previousOrder, e.currentOrder = e.currentOrder, e.previousOrder[:0]
	clear(e.currentActivePairs)
}

// flush delivers the events of the step that just ended
func (e *Events) flush() {
	e.init()
	e.processCollisionEvents()

	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
