package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sh.Set(cmd.Context(), args[0], []byte(args[1]))
		},
	}

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Prints the value stored for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := sh.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(string(value))
			return nil
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sh.Delete(cmd.Context(), args[0])
		},
	}

	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Reports whether a key is present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := sh.Has(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println(ok)
			return nil
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Lists all keys in ascending order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := sh.Keys(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		},
	}

	lenCmd = &cobra.Command{
		Use:   "len",
		Short: "Prints the number of stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := sh.Len(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
)
