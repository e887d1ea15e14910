package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mmynk/myfintrack/internal/models"
)

// recordCommands builds the add, update, delete and list subcommands of
// one record kind.
type recordCommands struct {
	use, short             string
	add, update, del, list *cobra.Command
}

func (r recordCommands) build() *cobra.Command {
	cmd := &cobra.Command{Use: r.use, Short: r.short}
	cmd.AddCommand(r.add, r.update, r.del, r.list)
	return cmd
}

func deleteCmd(noun string, del func(cmd *cobra.Command, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete " + noun,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := del(cmd, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", noun, args[0])
			return nil
		},
	}
}

func incomeCmd(c *cli) *cobra.Command {
	var (
		tf     transactionFlags
		source string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tf.apply(cmd.Flags(), transaction{Date: models.Today()})
			if err != nil {
				return err
			}
			in, err := c.app.records.AddIncome(cmd.Context(), models.Income{
				Amount: t.Amount, Source: source, Date: t.Date,
				Description: t.Description, Recurrence: t.Recurrence,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added income %s\n", in.ID)
			return nil
		},
	}
	tf.register(add)
	add.Flags().StringVar(&source, "source", "", "Income source, e.g. Salary")
	completeWith(add, "source", models.IncomeSources)
	add.MarkFlagRequired("amount")
	add.MarkFlagRequired("source")

	var (
		utf     transactionFlags
		usource string
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an income entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := c.app.records.Income(args[0])
			if err != nil {
				return err
			}
			t, err := utf.apply(cmd.Flags(), transaction{
				Amount: in.Amount, Date: in.Date, Description: in.Description, Recurrence: in.Recurrence,
			})
			if err != nil {
				return err
			}
			in.Amount, in.Date, in.Description, in.Recurrence = t.Amount, t.Date, t.Description, t.Recurrence
			if cmd.Flags().Changed("source") {
				in.Source = usource
			}
			if err := c.app.records.UpdateIncome(cmd.Context(), in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated income %s\n", in.ID)
			return nil
		},
	}
	utf.register(update)
	update.Flags().StringVar(&usource, "source", "", "Income source")
	completeWith(update, "source", models.IncomeSources)

	var search, filter string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List income",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireUser(); err != nil {
				return err
			}
			doc, err := c.app.renderer.Income(c.app.records.ListIncome(search, filter))
			if err != nil {
				return err
			}
			return c.display(cmd, doc)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match source or description")
	list.Flags().StringVar(&filter, "source", "", "Only this source")
	completeWith(list, "source", models.IncomeSources)

	return recordCommands{
		use: "income", short: "Manage income",
		add: add, update: update, list: list,
		del: deleteCmd("income", func(cmd *cobra.Command, id string) error {
			return c.app.records.DeleteIncome(cmd.Context(), id)
		}),
	}.build()
}

func expenseCmd(c *cli) *cobra.Command {
	var (
		tf                transactionFlags
		category, payment string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := tf.apply(cmd.Flags(), transaction{Date: models.Today()})
			if err != nil {
				return err
			}
			e, err := c.app.records.AddExpense(cmd.Context(), models.Expense{
				Amount: t.Amount, Category: category, Date: t.Date, PaymentMethod: payment,
				Description: t.Description, Recurrence: t.Recurrence,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added expense %s\n", e.ID)
			return nil
		},
	}
	tf.register(add)
	add.Flags().StringVar(&category, "category", "", "Expense category, e.g. Groceries")
	add.Flags().StringVar(&payment, "payment-method", "", "Payment method, e.g. Credit Card")
	completeWith(add, "category", models.ExpenseCategories)
	completeWith(add, "payment-method", models.PaymentMethods)
	add.MarkFlagRequired("amount")
	add.MarkFlagRequired("category")
	add.MarkFlagRequired("payment-method")

	var (
		utf                 transactionFlags
		ucategory, upayment string
	)
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.app.records.Expense(args[0])
			if err != nil {
				return err
			}
			t, err := utf.apply(cmd.Flags(), transaction{
				Amount: e.Amount, Date: e.Date, Description: e.Description, Recurrence: e.Recurrence,
			})
			if err != nil {
				return err
			}
			e.Amount, e.Date, e.Description, e.Recurrence = t.Amount, t.Date, t.Description, t.Recurrence
			if cmd.Flags().Changed("category") {
				e.Category = ucategory
			}
			if cmd.Flags().Changed("payment-method") {
				e.PaymentMethod = upayment
			}
			if err := c.app.records.UpdateExpense(cmd.Context(), e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated expense %s\n", e.ID)
			return nil
		},
	}
	utf.register(update)
	update.Flags().StringVar(&ucategory, "category", "", "Expense category")
	update.Flags().StringVar(&upayment, "payment-method", "", "Payment method")
	completeWith(update, "category", models.ExpenseCategories)
	completeWith(update, "payment-method", models.PaymentMethods)

	var search, filter string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireUser(); err != nil {
				return err
			}
			doc, err := c.app.renderer.Expenses(c.app.records.ListExpenses(search, filter))
			if err != nil {
				return err
			}
			return c.display(cmd, doc)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match category or description")
	list.Flags().StringVar(&filter, "category", "", "Only this category")
	completeWith(list, "category", models.ExpenseCategories)

	return recordCommands{
		use: "expense", short: "Manage expenses",
		add: add, update: update, list: list,
		del: deleteCmd("expense", func(cmd *cobra.Command, id string) error {
			return c.app.records.DeleteExpense(cmd.Context(), id)
		}),
	}.build()
}

// assetFlags are the editable fields of an asset.
type assetFlags struct {
	name, typ, value, acquired, description string
}

func (f *assetFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "Asset name")
	flags.StringVar(&f.typ, "type", "", "Asset type, e.g. Savings Account")
	flags.StringVar(&f.value, "value", "", "Current value")
	flags.StringVar(&f.acquired, "acquired", "", "Date acquired (YYYY-MM-DD)")
	flags.StringVar(&f.description, "description", "", "Free-text description")
	completeWith(cmd, "type", models.AssetTypes)
}

func (f *assetFlags) apply(flags *pflag.FlagSet, a models.Asset) (models.Asset, error) {
	var err error
	if flags.Changed("name") {
		a.Name = f.name
	}
	if flags.Changed("type") {
		a.Type = f.typ
	}
	if flags.Changed("value") {
		if a.CurrentValue, err = parseAmount("value", f.value); err != nil {
			return a, err
		}
	}
	if flags.Changed("acquired") {
		if a.DateAcquired, err = parseOptionalDate("acquired", f.acquired); err != nil {
			return a, err
		}
	}
	if flags.Changed("description") {
		a.Description = f.description
	}
	return a, nil
}

func assetCmd(c *cli) *cobra.Command {
	var af assetFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record an asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := af.apply(cmd.Flags(), models.Asset{})
			if err != nil {
				return err
			}
			if a, err = c.app.records.AddAsset(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added asset %s\n", a.ID)
			return nil
		},
	}
	af.register(add)
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("type")
	add.MarkFlagRequired("value")

	var uf assetFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.app.records.Asset(args[0])
			if err != nil {
				return err
			}
			if a, err = uf.apply(cmd.Flags(), a); err != nil {
				return err
			}
			if err := c.app.records.UpdateAsset(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated asset %s\n", a.ID)
			return nil
		},
	}
	uf.register(update)

	var search, filter string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireUser(); err != nil {
				return err
			}
			doc, err := c.app.renderer.Assets(c.app.records.ListAssets(search, filter))
			if err != nil {
				return err
			}
			return c.display(cmd, doc)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match name or description")
	list.Flags().StringVar(&filter, "type", "", "Only this type")
	completeWith(list, "type", models.AssetTypes)

	return recordCommands{
		use: "asset", short: "Manage assets",
		add: add, update: update, list: list,
		del: deleteCmd("asset", func(cmd *cobra.Command, id string) error {
			return c.app.records.DeleteAsset(cmd.Context(), id)
		}),
	}.build()
}

// liabilityFlags are the editable fields of a liability.
type liabilityFlags struct {
	name, typ, balance, original, rate, minimum, due, description string
}

func (f *liabilityFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.name, "name", "", "Liability name")
	flags.StringVar(&f.typ, "type", "", "Liability type, e.g. Credit Card")
	flags.StringVar(&f.balance, "balance", "", "Outstanding balance")
	flags.StringVar(&f.original, "original", "", "Original amount")
	flags.StringVar(&f.rate, "rate", "", "Annual interest rate in percent")
	flags.StringVar(&f.minimum, "minimum", "", "Minimum payment")
	flags.StringVar(&f.due, "due", "", "Next due date (YYYY-MM-DD)")
	flags.StringVar(&f.description, "description", "", "Free-text description")
	completeWith(cmd, "type", models.LiabilityTypes)
}

func (f *liabilityFlags) apply(flags *pflag.FlagSet, l models.Liability) (models.Liability, error) {
	var err error
	if flags.Changed("name") {
		l.Name = f.name
	}
	if flags.Changed("type") {
		l.Type = f.typ
	}
	if flags.Changed("balance") {
		if l.OutstandingBalance, err = parseAmount("balance", f.balance); err != nil {
			return l, err
		}
	}
	if flags.Changed("original") {
		if l.OriginalAmount, err = parseOptionalAmount("original", f.original); err != nil {
			return l, err
		}
	}
	if flags.Changed("rate") {
		if l.InterestRate, err = parseOptionalAmount("rate", f.rate); err != nil {
			return l, err
		}
	}
	if flags.Changed("minimum") {
		if l.MinimumPayment, err = parseOptionalAmount("minimum", f.minimum); err != nil {
			return l, err
		}
	}
	if flags.Changed("due") {
		if l.DueDate, err = parseOptionalDate("due", f.due); err != nil {
			return l, err
		}
	}
	if flags.Changed("description") {
		l.Description = f.description
	}
	return l, nil
}

func liabilityCmd(c *cli) *cobra.Command {
	var lf liabilityFlags
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a liability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lf.apply(cmd.Flags(), models.Liability{})
			if err != nil {
				return err
			}
			if l, err = c.app.records.AddLiability(cmd.Context(), l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added liability %s\n", l.ID)
			return nil
		},
	}
	lf.register(add)
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("type")
	add.MarkFlagRequired("balance")

	var uf liabilityFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a liability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.app.records.Liability(args[0])
			if err != nil {
				return err
			}
			if l, err = uf.apply(cmd.Flags(), l); err != nil {
				return err
			}
			if err := c.app.records.UpdateLiability(cmd.Context(), l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated liability %s\n", l.ID)
			return nil
		},
	}
	uf.register(update)

	var search, filter string
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List liabilities",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.requireUser(); err != nil {
				return err
			}
			doc, err := c.app.renderer.Liabilities(c.app.records.ListLiabilities(search, filter))
			if err != nil {
				return err
			}
			return c.display(cmd, doc)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Match name or description")
	list.Flags().StringVar(&filter, "type", "", "Only this type")
	completeWith(list, "type", models.LiabilityTypes)

	return recordCommands{
		use: "liability", short: "Manage liabilities",
		add: add, update: update, list: list,
		del: deleteCmd("liability", func(cmd *cobra.Command, id string) error {
			return c.app.records.DeleteLiability(cmd.Context(), id)
		}),
	}.build()
}
