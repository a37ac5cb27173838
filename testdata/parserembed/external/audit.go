package external

type Audit struct {
	CreatedBy string
	revision  int
}
