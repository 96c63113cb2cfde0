package shared

// Reference is a many-to-one link to another remote record: the id plus the
// display name the remote service returns alongside it.
type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
