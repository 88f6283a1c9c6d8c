package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/api"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/app"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/cart"
	"github.com/osmarDesenvolvedorDeSoftware/geradospelaimaculada/internal/staff"
)

func cmdCategories(ctx context.Context, env *app.Env, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: categories <list|add|update|delete>")
	}
	catalog := staff.NewCatalog(env.API)

	switch args[0] {
	case "list":
		cats, err := catalog.Categories(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, c := range cats {
			active := "ativa"
			if !c.Active {
				active = "inativa"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d itens\n", c.ID, c.Name, active, len(c.Items))
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("categories add", flag.ContinueOnError)
		name := fs.String("name", "", "nome da categoria")
		desc := fs.String("desc", "", "descrição")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		c, err := catalog.CreateCategory(ctx, api.CategoryRequest{
			Name:        optStr(*name),
			Description: optStr(*desc),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Categoria %s criada.\n", c.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("categories update", flag.ContinueOnError)
		name := fs.String("name", "", "novo nome")
		desc := fs.String("desc", "", "nova descrição")
		active := fs.String("active", "", "true ou false")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: categories update <id> [--name ...] [--active true|false]")
		}
		req := api.CategoryRequest{Name: optStr(*name), Description: optStr(*desc)}
		if b, err := optBool(*active); err != nil {
			return err
		} else if b != nil {
			req.Active = b
		}
		_, err := catalog.UpdateCategory(ctx, fs.Arg(0), req)
		return err

	case "delete":
		fs := flag.NewFlagSet("categories delete", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "confirma a remoção")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: categories delete <id> --yes")
		}
		if err := catalog.DeleteCategory(ctx, fs.Arg(0), *yes); err != nil {
			if errors.Is(err, staff.ErrConfirmationRequired) {
				return errors.New("remoção exige --yes")
			}
			return err
		}
		return nil

	default:
		return errors.Errorf("subcomando desconhecido: %q", args[0])
	}
}

func cmdItems(ctx context.Context, env *app.Env, args []string) error {
	if len(args) == 0 {
		return errors.New("uso: items <list|add|update|delete>")
	}
	catalog := staff.NewCatalog(env.API)

	switch args[0] {
	case "list":
		items, err := catalog.Items(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNome\tPreço\tPreço sócio\tSituação")
		for _, it := range items {
			memberPrice := "-"
			if it.MemberPrice != nil {
				memberPrice = cart.FormatBRL(*it.MemberPrice)
			}
			active := "ativo"
			if !it.Active {
				active = "inativo"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, cart.FormatBRL(it.Price), memberPrice, active)
		}
		return w.Flush()

	case "add":
		fs := flag.NewFlagSet("items add", flag.ContinueOnError)
		name := fs.String("name", "", "nome do item")
		category := fs.String("category", "", "id da categoria")
		price := fs.String("price", "", "preço, ex. 14.90")
		memberPrice := fs.String("member-price", "", "preço para sócios")
		desc := fs.String("desc", "", "descrição")
		image := fs.String("image", "", "URL da imagem")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		req := api.ItemRequest{
			Name:        optStr(*name),
			CategoryID:  optStr(*category),
			Description: optStr(*desc),
			ImageURL:    optStr(*image),
		}
		var err error
		if req.Price, err = optPrice(*price); err != nil {
			return err
		}
		if req.MemberPrice, err = optPrice(*memberPrice); err != nil {
			return err
		}
		it, err := catalog.CreateItem(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Item %s criado.\n", it.ID)
		return nil

	case "update":
		fs := flag.NewFlagSet("items update", flag.ContinueOnError)
		name := fs.String("name", "", "novo nome")
		price := fs.String("price", "", "novo preço")
		memberPrice := fs.String("member-price", "", "novo preço para sócios")
		desc := fs.String("desc", "", "nova descrição")
		image := fs.String("image", "", "nova URL da imagem")
		active := fs.String("active", "", "true ou false")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: items update <id> [--price ...] [--active true|false]")
		}
		req := api.ItemRequest{
			Name:        optStr(*name),
			Description: optStr(*desc),
			ImageURL:    optStr(*image),
		}
		var err error
		if req.Price, err = optPrice(*price); err != nil {
			return err
		}
		if req.MemberPrice, err = optPrice(*memberPrice); err != nil {
			return err
		}
		if b, err := optBool(*active); err != nil {
			return err
		} else if b != nil {
			req.Active = b
		}
		_, err = catalog.UpdateItem(ctx, fs.Arg(0), req)
		return err

	case "delete":
		fs := flag.NewFlagSet("items delete", flag.ContinueOnError)
		yes := fs.Bool("yes", false, "confirma a remoção")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return errors.New("uso: items delete <id> --yes")
		}
		if err := catalog.DeleteItem(ctx, fs.Arg(0), *yes); err != nil {
			if errors.Is(err, staff.ErrConfirmationRequired) {
				return errors.New("remoção exige --yes")
			}
			return err
		}
		return nil

	default:
		return errors.Errorf("subcomando desconhecido: %q", args[0])
	}
}

func cmdUpload(ctx context.Context, env *app.Env, args []string) error {
	if len(args) != 1 {
		return errors.New("uso: upload <arquivo>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return errors.Wrap(err, "open image")
	}
	defer f.Close()

	url, err := staff.NewCatalog(env.API).UploadItemImage(ctx, filepath.Base(args[0]), f)
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optBool(s string) (*bool, error) {
	switch s {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	default:
		return nil, errors.Errorf("valor inválido %q: use true ou false", s)
	}
}

func optPrice(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Errorf("preço inválido: %q", s)
	}
	return &d, nil
}
