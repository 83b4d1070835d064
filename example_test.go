package fhicl_test

import (
	"fmt"
	"os"

	fhicl "github.com/art-framework-suite/fhicl-go"
)

func ExampleParse() {
	loader := fhicl.MapLoader(map[string]string{
		"detector_defaults.fcl": `
BEGIN_PROLOG
standard_readout: {
  gain: 4
  window: 1.5e2
}
END_PROLOG
`,
	})

	table, err := fhicl.Parse(`
#include "detector_defaults.fcl"
readout: @local::standard_readout
readout.gain: 8
labels: [ near, far ]
`, loader)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	table.WriteIndented(os.Stdout, "")
	// Output:
	// readout: {
	//   gain: 8
	//   window: 150
	// }
	// labels: [near, far]
}
