package feather2d

import (
	"slices"
	"sync"

	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/internal/logger"
)

// Pair represents a pair of bodies to run through the narrow phase
type Pair struct {
	BodyA *actor.Body
	BodyB *actor.Body
	// enumeration order, used to keep results deterministic
	index int
}

// CollisionPair represents a pair of bodies GJK found overlapping
type CollisionPair struct {
	Pair
	simplex *gjk.Simplex
}

type indexedContact struct {
	index   int
	contact *constraint.ContactConstraint
}

// Pairs enumerates every pair of bodies (i < j) in order. Pairs of two static
// bodies are skipped: neither can ever be moved apart.
// There is no spatial culling, every remaining pair reaches the narrow phase.
func Pairs(bodies []*actor.Body) <-chan Pair {
	ch := make(chan Pair, len(bodies))

	go func() {
		defer close(ch)

		index := 0
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				if a.BodyType == actor.BodyTypeStatic && b.BodyType == actor.BodyTypeStatic {
					continue
				}

				ch <- Pair{BodyA: a, BodyB: b, index: index}
				index++
			}
		}
	}()

	return ch
}

// NarrowPhase runs GJK then EPA on every pair, with workersCount goroutines per stage.
// Contacts are returned in pair enumeration order whatever the worker count.
func NarrowPhase(pairs <-chan Pair, workersCount int) []*constraint.ContactConstraint {
	collisionPairs := GJK(pairs, workersCount)
	contactsChan := EPA(collisionPairs, workersCount)

	var indexed []indexedContact
	for c := range contactsChan {
		indexed = append(indexed, c)
	}

	slices.SortFunc(indexed, func(a, b indexedContact) int {
		return a.index - b.index
	})

	contacts := make([]*constraint.ContactConstraint, 0, len(indexed))
	for _, c := range indexed {
		contacts = append(contacts, c.contact)
	}
	return contacts
}

func GJK(pairChan <-chan Pair, workersCount int) <-chan CollisionPair {
	collisionChan := make(chan CollisionPair, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(collisionChan)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairChan {
					simplex := gjk.SimplexPool.Get().(*gjk.Simplex)
					simplex.Reset()

					if outcome := gjk.GJK(p.BodyA.Shape, p.BodyB.Shape, simplex); outcome == gjk.Overlapping {
						collisionChan <- CollisionPair{
							Pair:    p,
							simplex: simplex,
						}
					} else {
						gjk.SimplexPool.Put(simplex)
					}
				}
			}()
		}
		wg.Wait()
	}()

	return collisionChan
}

func EPA(p <-chan CollisionPair, workersCount int) <-chan indexedContact {
	ch := make(chan indexedContact, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for w := 0; w < workersCount; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for pair := range p {
					penetration, err := epa.EPA(pair.BodyA.Shape, pair.BodyB.Shape, pair.simplex)
					gjk.SimplexPool.Put(pair.simplex)

					contact := &constraint.ContactConstraint{
						BodyA: pair.BodyA,
						BodyB: pair.BodyB,
					}
					if err != nil {
						// Still overlapping, but with a zero displacement: no correction this step
						logger.Get().Debug("narrow phase: no penetration vector", "pair", pair.index, "err", err)
					} else {
						contact.Normal = penetration.Normal
						contact.Depth = penetration.Depth
						contact.Displacement = penetration.Vector
						contact.Points = epa.GenerateManifold(pair.BodyA.Shape, pair.BodyB.Shape, penetration.Normal, penetration.Depth)
					}

					ch <- indexedContact{index: pair.index, contact: contact}
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}
