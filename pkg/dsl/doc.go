/*
Package dsl provides a fluent builder for programmatically constructing Tableau tables.

It allows tests and embedders to describe slots and their cards in Go instead of
relying on YAML or JSON configuration files.

Example usage:

	b := dsl.New("solitaire")

	b.Tableau("A").At(0, 0).Cards("C1", "C2", "C3")
	b.Tableau("B").At(1, 0)
	b.Receiver("R").At(3, 1)

	table, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}
	// ... pass table to tableau.New(tableau.WithTable(table))
*/
package dsl
