// Package filter computes how a stack of filter layers transmits an X-ray
// spectrum.
//
// For each layer the linear attenuation coefficient mu(E) = (mu/rho)(E) * rho
// is interpolated from the layer's table, and the Beer-Lambert law gives the
// layer transmission exp(-mu(E) * t). The stack transmission is the product
// over layers:
//
//	T(E) = exp(-sum_i mu_i(E) * t_i)
//
// T is order independent, lies in (0, 1] and never increases when a layer gets
// thicker. All energies are in MeV; thicknesses are stored in mm on the
// records and converted to cm here.
//
// # Usage
//
//	stack := material.NewStack(material.NewRecord("W", 1, 19.35, src))
//	res, err := filter.Filter(beam, stack)
//	weights := spectrum.NormalizeSum1(res.CountsOut)
package filter
