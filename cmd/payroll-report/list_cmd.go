package main

import (
	"github.com/cmlabs-hris/salarycalc-backend-go/internal/domain/report"
	"github.com/spf13/cobra"
)

func newDepartmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "departments",
		Short: "List active departments",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := openService(cmd.Context(), newLogger())
			if err != nil {
				return err
			}
			defer closeDB()

			departments, err := svc.ListDepartments(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), departments)
		},
	}
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List statement kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd.OutOrStdout(), reportKinds())
		},
	}
}

func reportKinds() []report.KindResponse {
	kinds := report.Kinds()
	res := make([]report.KindResponse, 0, len(kinds))
	for _, k := range kinds {
		res = append(res, report.KindResponse{Kind: k, Name: k.DisplayName(), Filename: k.Filename()})
	}
	return res
}
