/*
Package tinkit reads, rescales and measures Triangulated Irregular Network
(TIN) surfaces stored as XML.

A TIN document holds point elements `<P id="N">x y z</P>` and face elements
`<F>i j k</F>`, usually grouped under `Surface` or `Breakline` containers.
The toolkit offers two independent pipelines over such documents.

# Scaling

The scaler rewrites every `F` and `P` element in place and serializes the
whole tree back, leaving everything else untouched. X and Y are multiplied by
the factor and written with 12 decimals, Z is written unscaled with 4.

	tk := tinkit.New()
	summary, err := tk.ScaleFile(ctx, "in.xml", 0.5, "out.xml")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(summary.Points, "points scaled")

# Centroid

The extractor builds a point mapping and a face list (faces that do not hold
exactly three IDs are dropped), then the calculator returns the area-weighted
centroid of the surface. A surface with no area has no centroid: check
Defined, or use Value.

	c, err := tk.CentroidFile(ctx, "in.xml")
	if err != nil {
		log.Fatal(err)
	}
	if p, ok := c.Value(); ok {
		fmt.Println(p.X, p.Y, p.Z)
	}

# Errors

Failures are typed and match the sentinels of package domain with errors.Is:
ErrParse, ErrMalformedElement, ErrInvalidPoint and ErrDanglingReference.

# Options

WithLogger, WithMetrics and WithCache attach a slog logger, Prometheus
collectors and a CentroidCache (memory or Redis). All are optional.
*/
package tinkit
