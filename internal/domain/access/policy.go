package access

import "net/http"

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// Authenticated allows any identified caller.
func Authenticated(id Identity) Decision {
	if id.Anonymous() {
		return Unauthenticated
	}
	return Allow
}

// OwnerOrReadOnly lets anyone read and only the owner write. ownerID is the
// resource's owner column (collect author, payment donor); nil means the owner
// no longer exists, so nobody may write.
func OwnerOrReadOnly(id Identity, method string, ownerID *uint) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if id.Anonymous() {
		return Unauthenticated
	}
	if ownerID == nil || *ownerID != id.UserID {
		return Forbidden
	}
	return Allow
}

// DonatorOfCollect lets a caller write only when they have paid into the
// collect that owns the target payment.
func DonatorOfCollect(id Identity, method string, hasDonated bool) Decision {
	if IsSafeMethod(method) {
		return Allow
	}
	if id.Anonymous() {
		return Unauthenticated
	}
	if !hasDonated {
		return Forbidden
	}
	return Allow
}

// All returns the first non-Allow decision.
func All(decisions ...Decision) Decision {
	for _, d := range decisions {
		if d != Allow {
			return d
		}
	}
	return Allow
}
