// Package compose assembles augmentation pipelines. An [Augmentation]
// gates an arbitrary [Transform] behind an application probability, and
// a [Scheduler] picks one augmentation per call from a pool and places
// it before or after a fixed processing chain according to caller
// supplied classification rules.
package compose
