package main

import (
	"fmt"
	"os"

	"github.com/galpin/rfactor-openmotorsport-plugin/pkg/openmotorsport"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <session.om>\n", os.Args[0])
		os.Exit(2)
	}

	session, err := openmotorsport.Read(os.Args[1])

	if err != nil {
		logrus.Fatalf("could not read session, err: %s", err)
	}

	fmt.Printf("User:        %s\n", session.User)
	fmt.Printf("Vehicle:     %s", session.Vehicle)

	if session.VehicleCategory != openmotorsport.NoVehicleCategory {
		fmt.Printf(" (%s)", session.VehicleCategory)
	}

	fmt.Println()
	fmt.Printf("Track:       %s\n", session.Track)
	fmt.Printf("Date:        %s\n", session.ISO8601Date())
	fmt.Printf("Data source: %s\n", session.DataSource)
	fmt.Printf("Comment:     %s\n", session.Comment)

	if session.NumSectors != openmotorsport.NoSectors {
		fmt.Printf("Sectors:     %d\n", session.NumSectors)
	}

	fmt.Println()
	fmt.Println("Channels:")

	for _, channel := range session.Channels() {
		interval := "variable"

		if channel.SampleInterval != openmotorsport.VariableSampleInterval {
			interval = fmt.Sprintf("%dms", channel.SampleInterval)
		}

		units := channel.Units

		if units == openmotorsport.NoUnits {
			units = "-"
		}

		fmt.Printf("  %3d  %-20s %-22s %-8s %-8s %d samples\n",
			channel.ID, channel.Group, channel.Name, units, interval, channel.Len())
	}

	markers := session.Markers()

	if len(markers) > 0 {
		fmt.Println()
		fmt.Println("Markers:")

		for i, marker := range markers {
			fmt.Printf("  %2d  %.1fms\n", i, marker)
		}
	}
}
