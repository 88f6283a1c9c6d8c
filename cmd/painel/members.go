package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/staff"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/tablelink"
)

func cmdMembers(ctx context.Context, env *app.Env, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: members <list|add|update|deactivate|delete|tabs|tab-orders|payment|pix>")
	}
	members := staff.NewMembers(env.API)

	switch args[0] {
	case "list":
		list, err := members.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNome\tEmail\tSituação")
		for _, m := range list {
			active := "ativo"
			if !m.Active {
				active = "inativo"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Email, active)
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("members add", flag.ContinueOnError)
		name := fs.String("name", "", "nome do sócio")
		email := fs.String("email", "", "email de acesso")
		phone := fs.String("phone", "", "telefone")
		password := fs.String("password", "", "senha inicial")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		p, err := members.Create(ctx, api.MemberRequest{
			Name:     optStr(*name),
			Email:    optStr(*email),
			Phone:    optStr(*phone),
			Password: optStr(*password),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Sócio %s cadastrado.\n", p.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("members update", flag.ContinueOnError)
		name := fs.String("name", "", "novo nome")
		email := fs.String("email", "", "novo email")
		phone := fs.String("phone", "", "novo telefone")
		password := fs.String("password", "", "nova senha")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: members update <id> [--name ...] [--email ...]")
		}
		_, err := members.Update(ctx, fs.Arg(0), api.MemberRequest{
			Name:     optStr(*name),
			Email:    optStr(*email),
			Phone:    optStr(*phone),
			Password: optStr(*password),
		})
		return err

	case "deactivate":
		if len(args) != 2 {
			return errors.New("uso: members deactivate <id>")
		}
		if _, err := members.Deactivate(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Sócio desativado. O histórico de contas é mantido.")
		return nil

	case "delete":
		fs := flag.NewFlagSet("members delete", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "confirma a remoção")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: members delete <id> --yes")
		}
		if err := members.Delete(ctx, fs.Arg(0), *yes); err != nil {
			if errors.Is(err, staff.ErrConfirmationRequired) {
				return errors.New("remoção exige --yes (prefira members deactivate)")
			}
			return err
		}
		return nil

	case "tabs":
		if len(args) != 2 {
			return errors.New("uso: members tabs <id>")
		}
		tabs, err := members.Tabs(ctx, args[1])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "Conta\tMês\tConsumido\tPago\tEm aberto\tSituação")
		for _, t := range tabs {
			fmt.Fprintf(w, "%s\t%02d/%d\t%s\t%s\t%s\t%s\n",
				t.ID, t.Month, t.Year,
				cart.FormatBRL(t.TotalConsumed), cart.FormatBRL(t.TotalPaid),
				cart.FormatBRL(t.Balance()), t.Status)
		}
		return w.Flush()

	case "tab-orders":
		if len(args) != 3 {
			return errors.New("uso: members tab-orders <id> <conta-id>")
		}
		orders, err := members.TabOrders(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, o := range orders {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				o.CreatedAt.Local().Format("02/01 15:04"),
				order.Label(order.Status(o.Status)), cart.FormatBRL(o.Total))
		}
		return w.Flush()

	case "payment":
		fs := flag.NewFlagSet("members payment", flag.ContinueOnError)
		amount := fs.String("amount", "", "valor recebido, ex. 120.00")
		notes := fs.String("notes", "", "observação do recebimento")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 2 {
			return errors.New("uso: members payment <id> <conta-id> --amount VALOR")
		}
		value, err := decimal.NewFromString(*amount)
		if err != nil {
			return errors.Errorf("valor inválido: %q", *amount)
		}
		tab, err := members.RegisterPayment(ctx, fs.Arg(0), fs.Arg(1), value, *notes)
		if err != nil {
			return err
		}
		fmt.Printf("Recebido %s. Em aberto: %s\n", cart.FormatBRL(value), cart.FormatBRL(tab.Balance()))
		return nil

	case "pix":
		if len(args) != 3 {
			return errors.New("uso: members pix <id> <conta-id>")
		}
		charge, err := members.GenerateTabPix(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Printf("Em aberto: %s\n", cart.FormatBRL(charge.Balance))
		fmt.Printf("Pix copia e cola:\n%s\n", charge.PixPayload)
		return nil

	default:
		return errors.Errorf("subcomando desconhecido: %q", args[0])
	}
}

// cmdLinks prints the per-table deep links and optionally writes printable
// QR codes.
func cmdLinks(env *app.Env, args []string) error {
	fs := flag.NewFlagSet("links", flag.ContinueOnError)
	qrDir := fs.String("qr-dir", "", "gravar QR codes PNG neste diretório")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("uso: links <mesa...> [--qr-dir DIR]")
	}

	base, err := env.PublicURL()
	if err != nil {
		return err
	}

	for _, arg := range fs.Args() {
		table, err := strconv.Atoi(arg)
		if err != nil {
			return errors.Errorf("mesa inválida: %q", arg)
		}
		link, err := tablelink.Link(base, table)
		if err != nil {
			return err
		}
		fmt.Printf("Mesa %d: %s\n", table, link)

		if *qrDir != "" {
			png, err := tablelink.QRPNG(base, table, 512)
			if err != nil {
				return err
			}
			path := filepath.Join(*qrDir, fmt.Sprintf("mesa-%d.png", table))
			if err := os.WriteFile(path, png, 0o644); err != nil {
				return errors.Wrap(err, "write qr file")
			}
		}
	}
	return nil
}
