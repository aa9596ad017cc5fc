// Package catalog models the prerequisite relation between courses as an
// explicit adjacency structure: each course maps to the set of courses it
// requires, with a derived reverse index of the courses it unlocks.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCourse is returned when an edge references a course that was never added.
	ErrUnknownCourse = errors.New("unknown course")
	// ErrSelfPrerequisite is returned for an edge from a course to itself.
	ErrSelfPrerequisite = errors.New("course cannot require itself")
	// ErrCycle is returned when an edge would make the prerequisite relation cyclic.
	ErrCycle = errors.New("prerequisite cycle")
)

// Graph is a directed acyclic prerequisite graph. It is safe for concurrent use.
type Graph struct {
	mu           sync.RWMutex
	courses      map[string]struct{}
	requirements map[string]map[string]struct{} // course -> courses it requires
	requiredFor  map[string]map[string]struct{} // course -> courses that require it
}

// New creates and returns an empty Graph.
func New() *Graph {
	return &Graph{
		courses:      make(map[string]struct{}),
		requirements: make(map[string]map[string]struct{}),
		requiredFor:  make(map[string]map[string]struct{}),
	}
}

// AddCourse registers a course id. Adding the same id twice is a no-op.
func (g *Graph) AddCourse(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.courses[id] = struct{}{}
}

// HasCourse reports whether id has been added.
func (g *Graph) HasCourse(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.courses[id]
	return ok
}

// AddPrerequisite records that course requires requirement. It returns
// (false, nil) when the edge already exists.
func (g *Graph) AddPrerequisite(course, requirement string) (bool, error) {
	if course == requirement {
		return false, fmt.Errorf("%w: %s", ErrSelfPrerequisite, course)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.courses[course]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCourse, course)
	}
	if _, ok := g.courses[requirement]; !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCourse, requirement)
	}
	if _, ok := g.requirements[course][requirement]; ok {
		return false, nil
	}
	// requirement -> course closes a cycle iff requirement already depends on course.
	if g.dependsOn(requirement, course) {
		return false, fmt.Errorf("%w: %s -> %s", ErrCycle, requirement, course)
	}

	if g.requirements[course] == nil {
		g.requirements[course] = make(map[string]struct{})
	}
	g.requirements[course][requirement] = struct{}{}
	if g.requiredFor[requirement] == nil {
		g.requiredFor[requirement] = make(map[string]struct{})
	}
	g.requiredFor[requirement][course] = struct{}{}
	return true, nil
}

// dependsOn reports whether from transitively requires target. Caller holds the lock.
func (g *Graph) dependsOn(from, target string) bool {
	visited := make(map[string]bool)
	stack := []string{from}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if current == target {
			return true
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		for req := range g.requirements[current] {
			stack = append(stack, req)
		}
	}
	return false
}

// Requirements returns the immediate prerequisites of id in ascending order.
func (g *Graph) Requirements(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.requirements[id])
}

// RequiredFor returns the courses that list id as an immediate prerequisite.
func (g *Graph) RequiredFor(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.requiredFor[id])
}

// EdgeCount returns the number of prerequisite edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, reqs := range g.requirements {
		n += len(reqs)
	}
	return n
}

// TopologicalOrder returns course ids such that every course appears after all
// of its prerequisites. Ties are broken by id.
func (g *Graph) TopologicalOrder() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	indegree := make(map[string]int, len(g.courses))
	for id := range g.courses {
		indegree[id] = len(g.requirements[id])
	}

	var ready []string
	for id, d := range indegree {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(g.courses))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		var unlocked []string
		for _, next := range sortedKeys(g.requiredFor[id]) {
			indegree[next]--
			if indegree[next] == 0 {
				unlocked = append(unlocked, next)
			}
		}
		if len(unlocked) > 0 {
			ready = append(ready, unlocked...)
			sort.Strings(ready)
		}
	}

	if len(order) != len(g.courses) {
		return nil, fmt.Errorf("%w: %d courses unreachable in topological order", ErrCycle, len(g.courses)-len(order))
	}
	return order, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
