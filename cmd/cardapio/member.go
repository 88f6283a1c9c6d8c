package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
)

func cmdMember(ctx context.Context, env *app.Env, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: member <login|logout|me|tab|tabs>")
	}
	switch args[0] {
	case "login":
		return cmdMemberLogin(ctx, env, args[1:])
	case "logout":
		if err := env.Member.Logout(); err != nil {
			return err
		}
		fmt.Println("Sessão de sócio encerrada.")
		return nil
	case "me":
		return cmdMemberMe(ctx, env)
	case "tab":
		return cmdMemberTab(ctx, env)
	case "tabs":
		return cmdMemberTabs(ctx, env)
	default:
		return errors.Errorf("subcomando desconhecido: %q", args[0])
	}
}

func cmdMemberLogin(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("member login", flag.ContinueOnError)
	password := fs.String("password", os.Getenv("CARDAPIO_MEMBER_PASSWORD"), "senha do sócio")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("uso: member login <email> --password SENHA")
	}
	if *password == "" {
		return errors.New("informe a senha com --password ou CARDAPIO_MEMBER_PASSWORD")
	}

	resp, err := env.API.MemberLogin(ctx, fs.Arg(0), *password)
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("email ou senha incorretos")
		}
		return err
	}
	if err := env.Member.Login(resp.Member, resp.AccessToken); err != nil {
		return err
	}
	fmt.Printf("Bem-vindo, %s!\n", resp.Member.Name)
	return nil
}

func cmdMemberMe(ctx context.Context, env *app.Env) error {
	if !env.Member.IsLoggedIn() {
		return errors.New("nenhum sócio conectado")
	}
	p, err := env.API.MemberMe(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\n", p.Name, p.Email)
	if p.Phone != "" {
		fmt.Printf("Telefone: %s\n", p.Phone)
	}
	return nil
}

func cmdMemberTab(ctx context.Context, env *app.Env) error {
	if !env.Member.IsLoggedIn() {
		return errors.New("nenhum sócio conectado")
	}
	tab, err := env.API.MemberTab(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Conta %02d/%d — consumido %s, pago %s, em aberto %s\n",
		tab.Month, tab.Year,
		cart.FormatBRL(tab.TotalConsumed), cart.FormatBRL(tab.TotalPaid), cart.FormatBRL(tab.Balance()))

	orders, err := env.API.MemberTabOrders(ctx)
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
}

func cmdMemberTabs(ctx context.Context, env *app.Env) error {
	if !env.Member.IsLoggedIn() {
		return errors.New("nenhum sócio conectado")
	}
	tabs, err := env.API.MemberTabs(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Mês\tConsumido\tPago\tEm aberto\tSituação")
	for _, t := range tabs {
		fmt.Fprintf(w, "%02d/%d\t%s\t%s\t%s\t%s\n",
			t.Month, t.Year,
			cart.FormatBRL(t.TotalConsumed), cart.FormatBRL(t.TotalPaid),
			cart.FormatBRL(t.Balance()), t.Status)
	}
	return w.Flush()
}
