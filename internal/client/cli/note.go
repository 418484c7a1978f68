package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/dmitrijs2005/notekeeper/internal/client/api"
)

func (a *App) promptNoteID() (int64, error) {
	s, err := GetSimpleText(a.reader, "- Enter note id", os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id: %q", s)
	}
	return id, nil
}

func (a *App) AddNote(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "- Enter title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	content, err := GetMultiline(a.reader, "- Enter note text (double Enter to finish):", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.api.CreateNote(ctx, title, content)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Created note %d\n", note.ID)
	return nil
}

func (a *App) List(ctx context.Context) error {
	notes, err := a.api.ListNotes(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if len(notes) == 0 {
		fmt.Println("No notes yet")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("%d\t%s\n", n.ID, n.Title)
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	note, err := a.api.GetNote(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Id: %d\nTitle: %s\nCreated: %s\n\n%s\n",
		note.ID, note.Title, note.CreatedAt.Format("2006-01-02 15:04"), note.Content)
	return nil
}

func (a *App) UpdateNote(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	// Empty answers leave the corresponding field untouched.
	var patch api.NotePatch
	title, err := GetSimpleText(a.reader, "- Enter new title (leave empty to keep)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if title != "" {
		patch.Title = &title
	}

	content, err := GetMultiline(a.reader, "- Enter new text (double Enter to keep current):", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if content != "" {
		patch.Content = &content
	}

	if patch.Title == nil && patch.Content == nil {
		fmt.Println("Nothing to change")
		return nil
	}

	note, err := a.api.UpdateNote(ctx, id, patch)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Updated note %d\n", note.ID)
	return nil
}

func (a *App) DeleteNote(ctx context.Context) error {
	id, err := a.promptNoteID()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.api.DeleteNote(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Note deleted")
	return nil
}
