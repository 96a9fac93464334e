/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hexkit/blockmesh/mesh"
	"github.com/hexkit/blockmesh/meshfile"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a mesh definition without writing output",
	Long: `
Builds the block model from a YAML mesh definition and runs the topology
validator, printing every inconsistency found: inside-out blocks, mismatched
cell counts or grading across shared faces, and dangling references.

blockmesh check -F mesh.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("meshFile")
		verbose, _ := cmd.Flags().GetBool("verbose")
		m, def := loadMesh(file)
		if verbose {
			def.Print()
		}
		diags := m.Validate()
		for _, d := range diags {
			fmt.Printf("error: %s\n", d.Error())
		}
		if len(diags) > 0 {
			fmt.Printf("%d problem(s) found\n", len(diags))
			os.Exit(1)
		}
		fmt.Printf("mesh OK: %d vertices, %d blocks\n", m.NumVertices(), m.NumBlocks())
	},
}

func init() {
	rootCmd.AddCommand(CheckCmd)
	CheckCmd.Flags().StringP("meshFile", "F", "", "YAML mesh definition file")
	CheckCmd.Flags().BoolP("verbose", "v", false, "print a summary of the mesh definition")
}

// loadMesh reads, parses and builds a mesh definition, exiting with a
// message on any construction failure.
func loadMesh(file string) (*mesh.Mesh, *meshfile.Definition) {
	if len(file) == 0 {
		fmt.Printf("error: must supply a mesh definition file (-F, --meshFile) in YAML format\n")
		exampleFile := `
########################################
title: "Two stacked cubes"
scale: 1
blocks:
  - corners: [[0,0,0],[1,0,0],[1,1,0],[0,1,0],
              [0,0,1],[1,0,1],[1,1,1],[0,1,1]]
    cells: [10, 10, 10]
  - stackOn: {block: 0, face: top}
    corners: [[0,0,2],[1,0,2],[1,1,2],[0,1,2]]
    cells: [10, 10, 10]
patches:
  - name: walls
    type: wall
    faces:
      - {block: 0, face: bottom}
      - {block: 1, face: top}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	def, err := meshfile.Parse(data)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	if def.Tolerance == 0 {
		def.Tolerance = viper.GetFloat64("tolerance")
	}
	if def.Scale == 0 {
		def.Scale = viper.GetFloat64("scale")
	}
	m, err := def.Build()
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	return m, def
}
