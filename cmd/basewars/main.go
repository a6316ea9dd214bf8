package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "basewars",
		Short: "两座基地备战、集结、交战的并发模拟",
		Long: `basewars 同时推进两座基地：采集资源、建造建筑、训练农民与步兵，
双方都准备完毕后在集结点会合并开战，直到一方军队被全歼。`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRunCmd(), newUnitsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
