// Package generation defines the boundary between the application core
// and external text-generation services. The TextGenerator interface is
// the only way model output enters the system; concrete adapters live
// under internal/platform.
package generation
