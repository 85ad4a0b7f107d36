package common

// Color is used to represent the color of one LED as an 8-bit RGB triple.
// The device has no alpha or white channel.  Note that the wire format
// reorders channels to G,R,B; Color always carries them in R,G,B order.
type Color struct {
	R uint8
	G uint8
	B uint8
}
