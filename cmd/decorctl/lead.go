package main

import (
	"fmt"

	"edenstone/internal/lead"
	"edenstone/internal/utils"

	"github.com/spf13/cobra"
)

func newLeadCmd() *cobra.Command {
	var form lead.Form

	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Submit a callback request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Phone = utils.NormalizePhoneRU(form.Phone)

			svc := lead.NewService(lead.NewCallbackGateway(apiBase, timeout), nil)
			if err := svc.Submit(cmd.Context(), form); err != nil {
				return fmt.Errorf("%s: %w", lead.Message(err), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "callback request submitted")
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Phone, "phone", "", "Contact phone (required)")
	cmd.Flags().StringVar(&form.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&form.Extra, "extra", "", "Free-form comment")
	cmd.Flags().BoolVar(&form.Bath, "bath", false, "Bathroom project")
	cmd.Flags().BoolVar(&form.Kitchen, "kitchen", false, "Kitchen project")
	cmd.Flags().BoolVar(&form.PrefWhatsApp, "whatsapp", false, "Prefer WhatsApp contact")
	cmd.Flags().BoolVar(&form.Consent, "consent", false, "Consent to personal data processing")
	return cmd
}
