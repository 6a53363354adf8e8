package service

import "time"

// now is the service clock. Tests replace it to control timestamps.
// MongoDB stores milliseconds, so finer precision would make a response
// differ from the same entity read back later.
var now = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
