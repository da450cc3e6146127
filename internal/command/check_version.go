// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"github.com/spf13/cobra"

	"github.com/celer-dev/celerc/internal/version"
)

var checkVersionCmd = &cobra.Command{
	Use:   "check-version [constraint]",
	Short: "Assert that the celerc binary version matches the required constraint",
	Long: `celerc is commonly invoked from CI pipelines and Makefiles which may depend on a
particular compiler feature or fix. This command provides a common way to check
that the installed celerc matches a required version.
`,
	Example: `
  # check that the version is exactly 1.2.3
  celerc check-version =v1.2.3

  # check that the version is greater than 1.2.0
  celerc check-version >v1.2

  # check that the version is equal or greater to 1.2.3
  celerc check-version >=1.2.3`,
	Args:              cobra.ExactArgs(1),
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return version.AssertVersion(args[0], version.Version)
	},
}

func init() {
	rootCmd.AddCommand(checkVersionCmd)
}
