package validator

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// In checks that the text form of the value is a member of set. Members are
// compared by their text form, so In(1, 2) accepts both 1 and "1".
// Negate it to express "must not be one of".
func In(set ...any) (Rule, error) {
	if len(set) == 0 {
		return Rule{}, ErrEmptySet
	}

	members := make(map[string]struct{}, len(set))
	names := make([]string, 0, len(set))
	for _, item := range set {
		s, err := cast.ToStringE(item)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %v", ErrInvalidSet, err)
		}
		if _, dup := members[s]; !dup {
			names = append(names, s)
		}
		members[s] = struct{}{}
	}

	list := strings.Join(names, ", ")
	return predicate("isIn",
		fmt.Sprintf("must be one of: %s", list),
		fmt.Sprintf("must not be one of: %s", list),
		func(v Value) bool {
			if !v.IsPresent() {
				return false
			}
			_, ok := members[v.String()]
			return ok
		}), nil
}
