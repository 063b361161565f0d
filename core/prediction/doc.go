// Package prediction fits regression models to an aggregated flight series and
// evaluates them at a requested date. Dates enter the models as ordinal day
// numbers (0001-01-01 is day 1); models work on offsets from the first point
// of the series, which leaves the fitted line unchanged and keeps the design
// matrix well conditioned. Model families are pluggable through a
// factory.Registry so configuration can select them by name.
package prediction
