package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newUnitsCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "units",
		Short: "打印生效的兵种与建筑成本表",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			tbl, err := cfg.UnitTable()
			if err != nil {
				return err
			}
			printUnitTable(os.Stdout, tbl)
			return nil
		},
	}
	cmd.Flags().StringVarP(&path, "config", "c", "", "配置文件路径")
	return cmd
}
