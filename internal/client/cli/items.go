package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// List prints the cached item list. Positions are 1-based and are accepted
// as item references by the mutating commands.
func (a *App) List(ctx context.Context) error {
	items := a.itemService.Items()
	if len(items) == 0 {
		fmt.Println("No items")
		return nil
	}
	for i, item := range items {
		mark := " "
		if item.Completed {
			mark = "x"
		}
		fmt.Printf("%3d. [%s] %s\n", i+1, mark, item.Title)
	}
	return nil
}

// Add creates an item from the remaining arguments, prompting for a title
// when none were given.
func (a *App) Add(ctx context.Context, args []string) error {
	title := strings.Join(args, " ")
	if title == "" {
		var err error
		title, err = getSimpleText(a.reader, "Enter title", os.Stdout)
		if err != nil {
			return err
		}
	}

	item, err := a.itemService.Add(ctx, title)
	if err != nil {
		log.Printf("Add failed: %s", err.Error())
		return err
	}
	fmt.Printf("Added %q\n", item.Title)
	return nil
}

// Done marks the referenced item completed.
func (a *App) Done(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args[0], true)
}

// Undo marks the referenced item not completed.
func (a *App) Undo(ctx context.Context, args []string) error {
	return a.setCompleted(ctx, args[0], false)
}

// Rename changes the referenced item's title.
func (a *App) Rename(ctx context.Context, args []string) error {
	item, err := a.resolveRef(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}

	title := strings.Join(args[1:], " ")
	updated, err := a.itemService.Update(ctx, item.ID, models.ItemPatch{Title: &title})
	if err != nil {
		log.Printf("Rename failed: %s", err.Error())
		return err
	}
	fmt.Printf("Renamed to %q\n", updated.Title)
	return nil
}

// Remove deletes the referenced item.
func (a *App) Remove(ctx context.Context, args []string) error {
	item, err := a.resolveRef(args[0])
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := a.itemService.Remove(ctx, item.ID); err != nil {
		log.Printf("Remove failed: %s", err.Error())
		return err
	}
	fmt.Printf("Removed %q\n", item.Title)
	return nil
}

// Refresh reloads the list from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.itemService.Refresh(ctx); err != nil {
		log.Printf("Refresh failed: %s", err.Error())
		return err
	}
	return nil
}

func (a *App) setCompleted(ctx context.Context, ref string, completed bool) error {
	item, err := a.resolveRef(ref)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	_, err = a.itemService.Update(ctx, item.ID, models.ItemPatch{Completed: &completed})
	if err != nil {
		log.Printf("Update failed: %s", err.Error())
		return err
	}
	return nil
}

// resolveRef maps a user-entered reference onto a cached item. A small
// integer is treated as a 1-based list position; anything else must match
// an item id exactly.
func (a *App) resolveRef(ref string) (models.Item, error) {
	items := a.itemService.Items()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(items) {
			return models.Item{}, fmt.Errorf("no item at position %d", n)
		}
		return items[n-1], nil
	}

	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("no item with id %q", ref)
}

func (a *App) clearItems() {
	a.itemService.Clear()
}
