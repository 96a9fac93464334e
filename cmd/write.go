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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// WriteCmd represents the write command
var WriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Validate a mesh definition and write the blockMeshDict",
	Long: `
Builds the block model from a YAML mesh definition, runs the topology
validator, and writes the rendered blockMeshDict. Nothing is written when
validation reports problems.

blockmesh write -F mesh.yaml -o system/blockMeshDict`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("meshFile")
		out, _ := cmd.Flags().GetString("output")
		prof, _ := cmd.Flags().GetBool("profile")
		if prof {
			defer profile.Start().Stop()
		}

		m, _ := loadMesh(file)
		diags := m.Validate()
		for _, d := range diags {
			fmt.Printf("error: %s\n", d.Error())
		}
		if len(diags) > 0 {
			fmt.Printf("refusing to write, %d problem(s) found\n", len(diags))
			os.Exit(1)
		}
		if err := m.WriteFile(out); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote %s: %d vertices, %d blocks\n", out, m.NumVertices(), m.NumBlocks())
	},
}

func init() {
	rootCmd.AddCommand(WriteCmd)
	WriteCmd.Flags().StringP("meshFile", "F", "", "YAML mesh definition file")
	WriteCmd.Flags().StringP("output", "o", "blockMeshDict", "output file path")
	WriteCmd.Flags().Bool("profile", false, "write a CPU profile of the run")
}
