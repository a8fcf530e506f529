package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Kind tags which variant a Principal holds.
type Kind string

const (
	KindStudent     Kind = "student"
	KindCoordinator Kind = "coordinator"
)

// ParseKind returns the Kind named by s and whether it is recognized.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStudent:
		return KindStudent, true
	case KindCoordinator:
		return KindCoordinator, true
	}
	return "", false
}

// Principal is an authenticated actor. Exactly one of Student or Coordinator
// is set, matching Kind. Build it with StudentPrincipal or CoordinatorPrincipal.
type Principal struct {
	Kind        Kind
	Student     *Student
	Coordinator *Coordinator
}

func StudentPrincipal(s *Student) Principal {
	return Principal{Kind: KindStudent, Student: s}
}

func CoordinatorPrincipal(c *Coordinator) Principal {
	return Principal{Kind: KindCoordinator, Coordinator: c}
}

func (p Principal) ID() primitive.ObjectID {
	switch p.Kind {
	case KindStudent:
		return p.Student.ID
	case KindCoordinator:
		return p.Coordinator.ID
	}
	return primitive.NilObjectID
}

func (p Principal) Name() string {
	switch p.Kind {
	case KindStudent:
		return p.Student.Name
	case KindCoordinator:
		return p.Coordinator.Name
	}
	return ""
}

// Is reports whether p is a well-formed principal of kind k.
func (p Principal) Is(k Kind) bool {
	switch k {
	case KindStudent:
		return p.Kind == KindStudent && p.Student != nil
	case KindCoordinator:
		return p.Kind == KindCoordinator && p.Coordinator != nil
	}
	return false
}
