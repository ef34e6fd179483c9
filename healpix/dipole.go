package healpix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// FitDipole fits a monopole and dipole to a full-sky RING-ordered map by
// least squares, excluding pixels within galCut radians of the galactic
// plane. The model per pixel is mono + dip . n, with n the pixel's unit
// vector.
func FitDipole(m []float64, nside int, galCut float64) (mono float64, dip [3]float64, err error) {
	if !NsideOK(nside) || len(m) != Npix(nside) {
		return 0, dip, fmt.Errorf(
			"healpix: map length %d does not match nside %d", len(m), nside)
	}

	zCut := math.Sin(galCut)
	var ata [16]float64
	var atb [4]float64
	used := 0
	for p, v := range m {
		x, y, z := PixToVec(nside, p)
		if math.Abs(z) < zCut {
			continue
		}
		used++
		row := [4]float64{1, x, y, z}
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				ata[i*4+j] += row[i] * row[j]
			}
			atb[i] += row[i] * v
		}
	}
	if used < 4 {
		return 0, dip, fmt.Errorf(
			"healpix: galactic cut %.3f rad leaves %d pixels, cannot fit dipole",
			galCut, used)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(mat.NewDense(4, 4, ata[:]), mat.NewVecDense(4, atb[:])); err != nil {
		return 0, dip, fmt.Errorf("healpix: dipole fit is singular: %w", err)
	}
	mono = sol.AtVec(0)
	dip = [3]float64{sol.AtVec(1), sol.AtVec(2), sol.AtVec(3)}
	return mono, dip, nil
}

// DipoleMap evaluates a fitted monopole+dipole at every pixel center.
func DipoleMap(nside int, mono float64, dip [3]float64) []float64 {
	out := make([]float64, Npix(nside))
	for p := range out {
		x, y, z := PixToVec(nside, p)
		out[p] = mono + dip[0]*x + dip[1]*y + dip[2]*z
	}
	return out
}

// RemoveDipole fits a monopole and dipole with the given galactic cut and
// subtracts both from the map, following healpy's remove_dipole. It returns
// the subtracted monopole+dipole map.
func RemoveDipole(m []float64, nside int, galCut float64) ([]float64, error) {
	mono, dip, err := FitDipole(m, nside, galCut)
	if err != nil {
		return nil, err
	}
	fitted := DipoleMap(nside, mono, dip)
	for p := range m {
		m[p] -= fitted[p]
	}
	return fitted, nil
}
