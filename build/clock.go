package build

import "github.com/raulk/clock"

// Clock is the global clock for the tooling. The pipeline uses it to measure
// elapsed wall-clock time. Tests that need control of time can replace this
// variable with clock.NewMock().
var Clock = clock.New()
