package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/MKhiriev/mini-capstone/internal/config"
	myHTTP "github.com/MKhiriev/mini-capstone/internal/handler/http"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/navigation"
	"github.com/MKhiriev/mini-capstone/internal/service"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var baseURL string

	root := &cobra.Command{
		Use:           "routes",
		Short:         "Inspect the blog route table",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&baseURL, "base", "/", "base URL the routes are mounted under")

	controller := func() (*navigation.Controller, error) {
		h, err := myHTTP.NewHandler(&service.Services{}, config.Server{BaseURL: baseURL}, logger.Nop())
		if err != nil {
			return nil, err
		}
		return h.Controller(), nil
	}

	root.AddCommand(
		newListCmd(controller),
		newResolveCmd(controller),
		newURLCmd(controller),
	)
	return root
}

type controllerFunc func() (*navigation.Controller, error)

// listCmd prints every route in declaration order
func newListCmd(controller controllerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the routes in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := controller()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tPARAMS")
			for _, r := range c.Table().Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Name, r.Path, strings.Join(r.Params(), ","))
			}
			return w.Flush()
		},
	}
}

// resolveCmd prints the route a path navigates to
func newResolveCmd(controller controllerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show which view a path navigates to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := controller()
			if err != nil {
				return err
			}

			m, ok := c.Resolve(args[0])
			if !ok {
				return fmt.Errorf("%s: %w", args[0], errNoRoute)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, m.Route.Name)
			names := make([]string, 0, len(m.Params))
			for name := range m.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %s=%s\n", name, m.Params[name])
			}
			return nil
		},
	}
}

// urlCmd builds the URL of a named route
func newURLCmd(controller controllerFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "url <name> [param=value...]",
		Short:   "Build the URL of a named route",
		Example: "  routes url authorPosts authorId=42",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := controller()
			if err != nil {
				return err
			}

			params := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				name, value, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("%q: %w", arg, errBadParam)
				}
				params[name] = value
			}

			u, err := c.URL(args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
}
