package core

import "fmt"

// QueryResult is the outcome of a path-walk through named references.
type QueryResultKind uint8

const (
	QuerySuccess QueryResultKind = iota
	QueryValueNotFound
)

type QueryResult struct {
	Kind    QueryResultKind
	Value   Value
	Message string
}

// Query resolves baseKey and then follows path, a sequence of named-key
// lookups through Account and Contract values. Every key touched along the
// way — including baseKey — is recorded in the overlay's logs as though it
// had been Read, since resolving the path requires reading it.
func (tc *TrackingCopy) Query(cid CorrelationID, baseKey Key, path []string) (QueryResult, error) {
	validatedBase, err := NewValidated(baseKey, Valid[Key])
	if err != nil {
		return QueryResult{}, err
	}
	v, found, err := tc.Read(cid, validatedBase)
	if err != nil {
		return QueryResult{}, err
	}
	if !found {
		return QueryResult{
			Kind:    QueryValueNotFound,
			Message: errorPathMsg(baseKey, path, "", 0),
		}, nil
	}

	curr := v
	for i, name := range path {
		refs, ok := curr.namedRefMap()
		if !ok {
			return QueryResult{
				Kind: QueryValueNotFound,
				Message: errorPathMsg(baseKey, path, fmt.Sprintf(
					"Name %s cannot be followed from value %s because it is neither an account nor contract. Value found at path:",
					name, curr.DebugString(),
				), i),
			}, nil
		}

		nextKey, ok := refs[name]
		if !ok {
			container := "Account"
			if curr.Tag == ValueContract {
				container = "Contract"
			}
			return QueryResult{
				Kind: QueryValueNotFound,
				Message: errorPathMsg(baseKey, path, fmt.Sprintf(
					"Name %s not found in %s at path:", name, container,
				), i),
			}, nil
		}

		validatedNext, err := NewValidated(nextKey, Valid[Key])
		if err != nil {
			return QueryResult{}, err
		}
		next, found, err := tc.Read(cid, validatedNext)
		if err != nil {
			return QueryResult{}, err
		}
		if !found {
			return QueryResult{
				Kind:    QueryValueNotFound,
				Message: errorPathMsg(baseKey, path, fmt.Sprintf("Name %s not found: ", nextKey), i),
			}, nil
		}

		curr = next
	}

	return QueryResult{Kind: QuerySuccess, Value: curr}, nil
}

// errorPathMsg builds a ValueNotFound message: missingMsg describes what
// went wrong, followed by baseKey (the query always names the key it was
// called with, even when the failure occurs several hops away from it),
// then the partial path consumed before the failing hop at
// missingAtIndex — path[missingAtIndex:] never appears, since those names
// were never reached.
func errorPathMsg(baseKey Key, path []string, missingMsg string, missingAtIndex int) string {
	msg := fmt.Sprintf("%s %s", missingMsg, baseKey)
	for _, p := range path[:missingAtIndex] {
		msg += "/" + p
	}
	return msg
}
