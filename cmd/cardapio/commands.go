package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/order"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/pix"
)

func dispatch(ctx context.Context, env *app.Env, cmd string, args []string) error {
	switch cmd {
	case "start":
		return cmdStart(env, args)
	case "reset":
		return cmdReset(env)
	case "menu":
		return cmdMenu(ctx, env)
	case "cart":
		return cmdCart(env)
	case "add":
		return cmdAdd(ctx, env, args)
	case "set":
		return cmdSet(env, args)
	case "remove":
		return cmdRemove(env, args)
	case "clear":
		return env.Cart.Clear()
	case "checkout":
		return cmdCheckout(ctx, env, args)
	case "pix":
		return cmdPix(ctx, env, args)
	case "pay":
		return cmdPay(ctx, env)
	case "status":
		return cmdStatus(ctx, env, args)
	case "orders":
		return cmdOrders(ctx, env)
	case "member":
		return cmdMember(ctx, env, args)
	default:
		fmt.Println(usage)
		return errors.Errorf("comando desconhecido: %q", cmd)
	}
}

func cmdStart(env *app.Env, args []string) error {
	rawURL := ""
	if len(args) > 0 {
		rawURL = args[0]
	}
	id, err := env.Identity.Resolve(rawURL)
	if err != nil {
		return err
	}
	fmt.Printf("Sessão: %s\n", id.SessionID)
	if id.TableNumber > 0 {
		fmt.Printf("Mesa: %d\n", id.TableNumber)
	} else {
		fmt.Println("Mesa: não identificada")
	}
	return nil
}

func cmdReset(env *app.Env) error {
	if err := env.Identity.Reset(); err != nil {
		return err
	}
	fmt.Println("Sessão reiniciada.")
	return nil
}

func cmdMenu(ctx context.Context, env *app.Env) error {
	menu, err := env.API.GetMenu(ctx)
	if err != nil {
		return err
	}
	isMember := env.Member.IsLoggedIn()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, cat := range menu {
		fmt.Fprintf(w, "\n%s\n", cat.Name)
		for _, it := range cat.Items {
			price := it.Price
			note := ""
			if isMember && it.MemberPrice != nil {
				price = *it.MemberPrice
				note = " (sócio)"
			}
			fmt.Fprintf(w, "  %s\t%s\t%s%s\n", it.ID, it.Name, cart.FormatBRL(price), note)
		}
	}
	return w.Flush()
}

func cmdCart(env *app.Env) error {
	items := env.Cart.Items()
	if len(items) == 0 {
		fmt.Println("Carrinho vazio.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, it := range items {
		fmt.Fprintf(w, "%dx\t%s\t%s\n", it.Quantity, it.Name, cart.FormatBRL(it.Price))
	}
	fmt.Fprintf(w, "\tTotal\t%s\n", cart.FormatBRL(env.Cart.Total()))
	return w.Flush()
}

// cmdAdd resolves the item against the live menu so the cart freezes the
// price the customer actually saw.
func cmdAdd(ctx context.Context, env *app.Env, args []string) error {
	if len(args) < 1 {
		return errors.New("uso: add <item-id> [qtd]")
	}
	qty := 1
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return errors.New("quantidade inválida")
		}
		qty = n
	}

	menu, err := env.API.GetMenu(ctx)
	if err != nil {
		return err
	}
	isMember := env.Member.IsLoggedIn()
	for _, cat := range menu {
		for _, it := range cat.Items {
			if it.ID != args[0] {
				continue
			}
			price := it.Price
			if isMember && it.MemberPrice != nil {
				price = *it.MemberPrice
			}
			for range qty {
				if err := env.Cart.AddItem(it.ID, it.Name, price, it.ImageURL); err != nil {
					return err
				}
			}
			fmt.Printf("%dx %s no carrinho.\n", qty, it.Name)
			return nil
		}
	}
	return errors.Errorf("item %q não está no cardápio", args[0])
}

func cmdSet(env *app.Env, args []string) error {
	if len(args) != 2 {
		return errors.New("uso: set <item-id> <qtd>")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.New("quantidade inválida")
	}
	return env.Cart.UpdateQuantity(args[0], qty)
}

func cmdRemove(env *app.Env, args []string) error {
	if len(args) != 1 {
		return errors.New("uso: remove <item-id>")
	}
	return env.Cart.RemoveItem(args[0])
}

func cmdCheckout(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	name := fs.String("name", "", "nome do cliente")
	obs := fs.String("obs", "", "observações para a cozinha")
	conta := fs.Bool("conta", false, "lançar na conta mensal do sócio")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := env.Identity.Resolve("")
	if err != nil {
		return err
	}
	req := order.PlaceRequest{
		Identity:     id,
		CustomerName: *name,
		Observations: *obs,
		BillToTab:    *conta,
	}
	if p, ok := env.Member.Current(); ok {
		req.MemberID = p.ID
		if req.CustomerName == "" {
			req.CustomerName = p.Name
		}
	}

	placed, err := order.NewCheckout(env.API, env.Store).Place(ctx, env.Cart, req)
	if err != nil {
		return err
	}

	fmt.Printf("Pedido %s criado — %s\n", placed.ID, cart.FormatBRL(placed.Total))
	if placed.PixPayload != "" {
		fmt.Println("Pague com o pix abaixo e depois rode: cardapio pay")
		printPix(placed.PixPayload)
	} else {
		fmt.Println("Lançado na conta. Aguardando confirmação do restaurante.")
	}
	return nil
}

func cmdPix(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("pix", flag.ContinueOnError)
	qrFile := fs.String("qr", "", "gravar o QR code em um arquivo PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	o, err := activeOrder(ctx, env)
	if err != nil {
		return err
	}
	if o.PixPayload == "" {
		return errors.New("o pedido ativo não tem cobrança pix")
	}
	printPix(o.PixPayload)

	if *qrFile != "" {
		png, err := pix.QRPNG(o.PixPayload, 512)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*qrFile, png, 0o644); err != nil {
			return errors.Wrap(err, "write qr file")
		}
		fmt.Printf("QR code gravado em %s\n", *qrFile)
	}
	return nil
}

func cmdPay(ctx context.Context, env *app.Env) error {
	id, ok := order.Active(env.Store)
	if !ok {
		return errors.New("nenhum pedido ativo")
	}
	o, err := env.API.DeclarePayment(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Pagamento declarado. Status: %s\n", order.Label(order.Status(o.Status)))
	return nil
}

func cmdStatus(ctx context.Context, env *app.Env, args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	watch := fs.Bool("watch", false, "acompanhar até a entrega")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, ok := order.Active(env.Store)
	if !ok {
		return errors.New("nenhum pedido ativo")
	}

	if !*watch {
		o, err := env.API.GetOrder(ctx, id)
		if err != nil {
			return err
		}
		printStatus(o)
		return finishIfDone(env, order.Status(o.Status))
	}

	var last order.Status
	err := order.NewTracker(env.API, env.Config.Poll.Order).Watch(ctx, id, func(o *api.Order) {
		last = order.Status(o.Status)
		printStatus(o)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return finishIfDone(env, last)
}

// finishIfDone releases the active order once it is delivered or cancelled,
// so the next checkout starts fresh.
func finishIfDone(env *app.Env, s order.Status) error {
	done, err := order.CompleteIfTerminal(env.Store, s)
	if err != nil {
		return err
	}
	if done {
		fmt.Println("Pedido finalizado. Você já pode fazer um novo pedido.")
	}
	return nil
}

func cmdOrders(ctx context.Context, env *app.Env) error {
	id, err := env.Identity.Resolve("")
	if err != nil {
		return err
	}
	orders, err := env.API.GetSessionOrders(ctx, id.SessionID)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("Nenhum pedido nesta sessão.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			o.CreatedAt.Local().Format("02/01 15:04"),
			o.ID, order.Label(order.Status(o.Status)), cart.FormatBRL(o.Total))
	}
	return w.Flush()
}

func activeOrder(ctx context.Context, env *app.Env) (*api.Order, error) {
	id, ok := order.Active(env.Store)
	if !ok {
		return nil, errors.New("nenhum pedido ativo")
	}
	return env.API.GetOrder(ctx, id)
}

func printStatus(o *api.Order) {
	stage := order.Stage(order.Status(o.Status))
	for i, s := range order.Stages() {
		mark := " "
		if i <= stage {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, order.Label(s))
	}
	fmt.Printf("Pedido %s — %s\n\n", o.ID, order.Label(order.Status(o.Status)))
}

// printPix shows the decoded charge when the payload parses, and always the
// raw copy-and-paste string.
func printPix(payload string) {
	if p, err := pix.Parse(payload); err == nil {
		fmt.Printf("Recebedor: %s (%s)\n", p.MerchantName, p.MerchantCity)
		if !p.Amount.IsZero() {
			fmt.Printf("Valor: %s\n", cart.FormatBRL(p.Amount))
		}
	}
	fmt.Printf("Pix copia e cola:\n%s\n", payload)
}
