/*
Package dsl provides a fluent builder for TIN XML documents.

It is meant for tests, examples and programs that generate surfaces: the
result is a regular document that every pipeline of the toolkit accepts.

Example usage:

	b := dsl.New()

	b.Surface("ground").
		Point(1, 0, 0, 0).
		Point(2, 1, 0, 0).
		Point(3, 0, 1, 0).
		Face(1, 2, 3)

	data, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	c, err := tinkit.New().Centroid(ctx, data)
*/
package dsl
