package lib

import "sort"

// Set is a string set. It is not safe for concurrent use; the editing session
// owns every Set it builds for the duration of a single transition.
type Set struct {
	data map[string]struct{}
}

func NewSet(elems ...string) Set {
	s := Set{data: make(map[string]struct{}, len(elems))}
	for _, elem := range elems {
		s.Add(elem)
	}
	return s
}

func (s Set) Add(elem string) {
	s.data[elem] = struct{}{}
}

func (s Set) Remove(elem string) {
	delete(s.data, elem)
}

func (s Set) Contains(elem string) bool {
	_, exists := s.data[elem]
	return exists
}

func (s Set) Size() int {
	return len(s.data)
}

// AsSlice returns the elements in sorted order so rendered output is stable.
func (s Set) AsSlice() []string {
	elements := make([]string, 0, len(s.data))
	for elem := range s.data {
		elements = append(elements, elem)
	}
	sort.Strings(elements)
	return elements
}
