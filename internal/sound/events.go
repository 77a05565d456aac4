package sound

// Events the front end plays.
const (
	Key     = "key"
	Result  = "result"
	Error   = "error"
	Startup = "startup"
)
