// Package material describes the physical layers of an X-ray filter.
//
// A [Record] is one layer: a name, a thickness in millimeters, a density in
// g/cm^3 and a mass-attenuation [Table] read from a [Source]. Records never
// fail to construct. When the table cannot be read the record keeps an empty
// table and exposes the cause through [Record.Diagnostic]; the failure
// surfaces as [ErrIncompleteMaterial] only when the layer is used.
//
// A [Stack] is an ordered beam path of records. Its order drives labeling
// only; transmission does not depend on it.
package material
