package refconfig

// Settings is the process configuration for a durable-ref deployment: the
// hash-verification toggle, the memory backend's sweep interval, Redis
// connection parameters, and the default CAS back-off tuning. Load it with
// LoadFromEnv. Interval fields are plain integers (seconds/milliseconds)
// rather than time.Duration, since the stdlib Duration type implements
// neither encoding.TextUnmarshaler nor valueparser.Unmarshalable.
type Settings struct {
	HashVerification    bool `default:"true"`
	InternSweepSeconds  int  `default:"60"`

	RedisHost     string `default:"localhost"`
	RedisPort     uint16 `default:"6379"`
	RedisPassword string
	RedisDB       int `default:"0"`

	CASInitialIntervalMillis int64   `default:"500"`
	CASMultiplier            float64 `default:"1.5"`
	CASMaxIntervalMillis     int64   `default:"60000"`
	CASResetAfterMillis      int64   `default:"0"`
}
