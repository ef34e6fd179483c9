// Package healpix implements the small slice of HEALPix geometry the sky
// model needs: resolution validity checks and RING-scheme pixel centers,
// plus a masked monopole+dipole fit over full-sky maps.
package healpix

import (
	"fmt"
	"math"
)

// NsideOK reports whether nside is a valid HEALPix resolution parameter,
// i.e. a power of two.
func NsideOK(nside int) bool {
	return nside > 0 && nside&(nside-1) == 0
}

// Npix returns the pixel count of an nside map, 12*nside^2.
func Npix(nside int) int {
	return 12 * nside * nside
}

// NsideFromNpix returns the resolution parameter of a map with npix pixels,
// or an error if npix is not a valid HEALPix pixel count.
func NsideFromNpix(npix int) (int, error) {
	if npix > 0 && npix%12 == 0 {
		nside := int(math.Round(math.Sqrt(float64(npix) / 12)))
		if Npix(nside) == npix && NsideOK(nside) {
			return nside, nil
		}
	}
	return 0, fmt.Errorf("healpix: %d is not a valid pixel count", npix)
}

// PixZPhi returns the z coordinate (cosine of colatitude) and longitude of
// the center of RING-ordered pixel ipix.
func PixZPhi(nside, ipix int) (z, phi float64) {
	npix := Npix(nside)
	if ipix < 0 || ipix >= npix {
		panic(fmt.Sprintf("healpix: pixel %d out of range for nside %d", ipix, nside))
	}
	ncap := 2 * nside * (nside - 1)

	switch {
	case ipix < ncap: // north polar cap
		i := int((1 + math.Sqrt(float64(1+2*ipix))) / 2)
		j := ipix - 2*i*(i-1)
		z = 1 - float64(i*i)/(3*float64(nside*nside))
		phi = math.Pi / (2 * float64(i)) * (float64(j) + 0.5)

	case ipix < npix-ncap: // equatorial belt
		p := ipix - ncap
		i := p/(4*nside) + nside
		j := p % (4 * nside)
		s := (i - nside + 1) % 2
		z = 4.0/3.0 - 2*float64(i)/(3*float64(nside))
		phi = math.Pi / (2 * float64(nside)) * (float64(j) + float64(s)/2)

	default: // south polar cap, mirrored
		q := npix - 1 - ipix
		i := int((1 + math.Sqrt(float64(1+2*q))) / 2)
		j := 4*i - 1 - (q - 2*i*(i-1))
		z = float64(i*i)/(3*float64(nside*nside)) - 1
		phi = math.Pi / (2 * float64(i)) * (float64(j) + 0.5)
	}
	return z, phi
}

// PixToVec returns the unit vector of the center of RING-ordered pixel ipix.
func PixToVec(nside, ipix int) (x, y, z float64) {
	z, phi := PixZPhi(nside, ipix)
	sinTheta := math.Sqrt(1 - z*z)
	return sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), z
}
