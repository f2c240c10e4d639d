package commands

import (
	"reflect"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/luminesce-sdk/pkg/apifactory"
)

// APIInfo describes one client registered with the factory.
type APIInfo struct {
	Interface string `json:"interface" yaml:"interface"`
	Concrete  string `json:"concrete"  yaml:"concrete"`
	BasePath  string `json:"base_path" yaml:"base_path"`
}

// NewAPIsCommand creates the apis command.
func NewAPIsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apis",
		Short: "List registered API clients",
		Long:  "Build the API factory from the secrets configuration and list every client it holds",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr())

			factory, err := newFactory(logger)
			if err != nil {
				return err
			}

			infos, err := listAPIs(factory)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				rows = append(rows, []string{info.Interface, info.Concrete, info.BasePath})
			}

			return writeOutput(cmd.OutOrStdout(), infos, []string{"Interface", "Type", "Base Path"}, rows)
		},
	}
}

// listAPIs pairs every capability interface in factory with the type of its client.
func listAPIs(factory *apifactory.Factory) ([]APIInfo, error) {
	var infos []APIInfo

	for _, key := range factory.Keys() {
		if key.Kind() != reflect.Interface {
			continue
		}

		instance, err := factory.Lookup(key)
		if err != nil {
			return nil, err
		}

		infos = append(infos, APIInfo{
			Interface: key.String(),
			Concrete:  reflect.TypeOf(instance).String(),
			BasePath:  instance.BasePath(),
		})
	}

	slices.SortFunc(infos, func(a, b APIInfo) int {
		return strings.Compare(a.Interface, b.Interface)
	})

	return infos, nil
}
