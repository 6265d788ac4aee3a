package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jrsteele09/gcn-portal/circulars"
	"github.com/jrsteele09/gcn-portal/datacite"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd(settings datacite.Settings) *cobra.Command {
	root := &cobra.Command{
		Use:          "doictl",
		Short:        "Inspect and register GCN Circular DOIs",
		SilenceUsage: true,
	}
	root.AddCommand(newDOICmd(settings), newRegisterCmd(settings))
	return root
}

func newDOICmd(settings datacite.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "doi <circular-id>",
		Short: "Print the DOI and handle URL for a circular",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseCircularID(args[0])
			if err != nil {
				return err
			}
			client := datacite.New(settings)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", client.DOI(id), client.HandleURL(id))
			return nil
		},
	}
}

type registerFlags struct {
	id        int
	created   string
	submitter string
	subject   string
	timeout   time.Duration
}

func newRegisterCmd(settings datacite.Settings) *cobra.Command {
	var flags registerFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create or update the DOI record for a circular",
		Long: `Sends one upsert to the DataCite REST API. Running it again for the same
circular replaces the record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := parseCreated(flags.created)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()
			ctx = log.Logger.WithContext(ctx)

			client := datacite.New(settings)
			err = client.Register(ctx, circulars.Circular{
				CircularID: flags.id,
				CreatedOn:  created,
				Submitter:  flags.submitter,
				Subject:    flags.subject,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\t%s\n", client.DOI(flags.id), client.HandleURL(flags.id))
			return nil
		},
	}

	cmd.Flags().IntVar(&flags.id, "id", 0, "circular number")
	cmd.Flags().StringVar(&flags.created, "created", "", "creation date, YYYY-MM-DD or RFC 3339")
	cmd.Flags().StringVar(&flags.submitter, "submitter", "", "author line of the circular")
	cmd.Flags().StringVar(&flags.subject, "subject", "", "subject of the circular")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "request timeout")
	for _, name := range []string{"id", "created", "submitter", "subject"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func parseCircularID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid circular id %q", raw)
	}
	return id, nil
}

func parseCreated(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --created %q: want YYYY-MM-DD or RFC 3339", raw)
	}
	return t, nil
}
