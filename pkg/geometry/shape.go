package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit returns the intersection with the smallest t in the open interval (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
}

// ShapeList is an ordered collection of shapes searched linearly for the nearest hit.
// Order does not affect which hit is returned.
type ShapeList []Shape

// Add appends shapes to the list
func (l *ShapeList) Add(shapes ...Shape) {
	*l = append(*l, shapes...)
}

// Hit checks every shape, shrinking the search interval to the closest hit so far
func (l ShapeList) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range l {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
