// Package kakuyomu reads works, episodes and rankings from the kakuyomu.jp
// novel site and renders them as plain text.
//
// This package contains domain types, interfaces and the pure selection and
// rendering pipeline. Implementations live in subdirectories named after
// their primary dependency (e.g., goquery/, http/, rod/).
package kakuyomu
