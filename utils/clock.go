// utils/clock.go
package utils

import "time"

// Now is the clock used for every time-sensitive decision (stats windows,
// invoice numbers, lifecycle timestamps). Tests override it to pin time.
var Now = time.Now
