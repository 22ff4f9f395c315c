package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"velvet_bite/internal/demo"
	"velvet_bite/pkg/dishclient"
	"velvet_bite/pkg/logger"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "адрес API")
	user := flag.String("user", os.Getenv("ADMIN_USER"), "администратор")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "пароль администратора")
	name := flag.String("name", "", "название блюда для add")
	description := flag.String("description", "", "описание блюда для add")
	price := flag.String("price", "", "цена блюда для add")
	calories := flag.Int("calories", 0, "калорийность для add")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: dish-demo [flags] list | add | delete <id>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger.Setup("warn", true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client := dishclient.New(*baseURL, dishclient.WithBasicAuth(*user, *password))
	toaster := demo.NewToaster()
	d := demo.NewDishDemo(client, toaster)

	var err error
	switch flag.Arg(0) {
	case "", "list":
		d.Reload(ctx)
	case "add":
		nd := dishclient.NewDish{Name: *name, Description: *description}
		if *price != "" {
			p, perr := decimal.NewFromString(*price)
			if perr != nil {
				log.Fatal().Err(perr).Msg("price must be a number")
			}
			nd.Price = &p
		}
		if *calories > 0 {
			nd.Calories = calories
		}
		_, err = d.Create(ctx, nd)
	case "delete":
		id, perr := strconv.Atoi(flag.Arg(1))
		if perr != nil {
			flag.Usage()
			os.Exit(2)
		}
		err = d.Delete(ctx, id)
	default:
		flag.Usage()
		os.Exit(2)
	}

	for _, t := range toaster.Toasts() {
		fmt.Printf("[%s] %s\n", t.Kind, t.Text)
	}
	printList(d.State())

	if err != nil {
		os.Exit(1)
	}
}

func printList(st demo.ListState) {
	switch {
	case st.Err != nil:
		fmt.Println("Помилка завантаження")
	case st.Empty:
		fmt.Println("Немає страв")
	default:
		for _, dish := range st.Dishes {
			fmt.Printf("#%d\t%s\t%s\t%s\n", dish.ID, dish.Name, dish.Price.String(), dish.Description)
		}
	}
}
