package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"photo-library/photos"
)

const dateLayout = "2006-01-02 15:04"

// readPassword reads a password with terminal masking.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println()
	return string(bytePassword), nil
}

func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Print(label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

// runShell drives the login loop. Each successful login opens either the
// admin session or a regular album session.
func runShell(store *photos.Store) error {
	mgr := photos.NewManager(store)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to photo-library.")
	fmt.Println("Log in with a username, or type 'exit' to quit.")

	for {
		username, ok := prompt(scanner, "\nUsername: ")
		if !ok {
			return nil
		}
		if username == "exit" {
			fmt.Println("Goodbye!")
			return nil
		}
		if username == "" {
			continue
		}

		password, err := readPassword("Password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}

		if err := mgr.Login(username, password); err != nil {
			fmt.Printf("Login failed: %v\n", err)
			continue
		}

		if mgr.CurrentUser().IsAdmin() {
			adminSession(scanner, mgr)
		} else {
			userSession(scanner, mgr)
		}
		mgr.Logout()
	}
}

// ---------------------------------------------------------------------------
// Admin session
// ---------------------------------------------------------------------------

func adminSession(sc *bufio.Scanner, mgr *photos.Manager) {
	fmt.Println("\nAdmin commands: list users, add user, delete user, logout")

	for {
		cmd, ok := prompt(sc, "\nadmin> ")
		if !ok {
			return
		}
		switch cmd {
		case "list users":
			handleListUsers(mgr)
		case "add user":
			handleAddUser(sc, mgr)
		case "delete user":
			handleDeleteUser(sc, mgr)
		case "logout":
			return
		case "":
		default:
			fmt.Println("Unknown command. Use: list users, add user, delete user, logout")
		}
	}
}

func handleListUsers(mgr *photos.Manager) {
	usernames, err := mgr.Usernames()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("%d account(s):\n", len(usernames))
	for _, name := range usernames {
		fmt.Printf("  %s\n", name)
	}
}

func handleAddUser(sc *bufio.Scanner, mgr *photos.Manager) {
	username, ok := prompt(sc, "New username: ")
	if !ok {
		return
	}
	password, err := readPassword(fmt.Sprintf("Password for %s: ", username))
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if _, err := mgr.CreateUserAccount(username, password); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Created user '%s'\n", username)
}

func handleDeleteUser(sc *bufio.Scanner, mgr *photos.Manager) {
	username, ok := prompt(sc, "Username to delete: ")
	if !ok {
		return
	}
	deleted, err := mgr.DeleteUserAccount(username)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !deleted {
		fmt.Printf("No user named '%s'\n", username)
		return
	}
	fmt.Printf("Deleted user '%s'\n", username)
}

// ---------------------------------------------------------------------------
// Regular session: albums
// ---------------------------------------------------------------------------

func userSession(sc *bufio.Scanner, mgr *photos.Manager) {
	fmt.Printf("\nLogged in as %s.\n", mgr.CurrentUser().Username())
	fmt.Println("Commands: list, create <album>, rename <old> <new>, delete <album>,")
	fmt.Println("          open <album>, search, logout")

	for {
		line, ok := prompt(sc, "\nalbums> ")
		if !ok {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "list":
			handleListAlbums(mgr)
		case "create":
			handleCreateAlbum(mgr, arg)
		case "rename":
			oldName, newName, found := strings.Cut(arg, " ")
			if !found {
				fmt.Println("Usage: rename <old> <new>")
				continue
			}
			handleRenameAlbum(mgr, oldName, newName)
		case "delete":
			handleDeleteAlbum(mgr, arg)
		case "open":
			album := mgr.CurrentUser().Album(arg)
			if album == nil {
				fmt.Printf("No album named '%s'\n", arg)
				continue
			}
			albumSession(sc, mgr, album)
		case "search":
			searchSession(sc, mgr)
		case "logout":
			return
		case "":
		default:
			fmt.Println("Unknown command.")
		}
	}
}

func handleListAlbums(mgr *photos.Manager) {
	albums := mgr.CurrentUser().Albums()
	if len(albums) == 0 {
		fmt.Println("No albums yet. Use 'create <album>' to start one.")
		return
	}
	fmt.Printf("%-25s %-8s %-18s %s\n", "Album", "Photos", "Earliest", "Latest")
	fmt.Println(strings.Repeat("-", 70))
	for _, album := range albums {
		earliest, latest := "-", "-"
		if t, ok := album.EarliestDate(); ok {
			earliest = t.Format(dateLayout)
		}
		if t, ok := album.LatestDate(); ok {
			latest = t.Format(dateLayout)
		}
		fmt.Printf("%-25s %-8d %-18s %s\n", album.Name(), album.Count(), earliest, latest)
	}
}

func handleCreateAlbum(mgr *photos.Manager, name string) {
	created, err := mgr.CreateAlbum(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !created {
		fmt.Printf("An album named '%s' already exists\n", name)
		return
	}
	fmt.Printf("Created album '%s'\n", name)
}

func handleRenameAlbum(mgr *photos.Manager, oldName, newName string) {
	renamed, err := mgr.RenameAlbum(oldName, newName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !renamed {
		fmt.Println("Rename refused: check that the old album exists and the new name is free.")
		return
	}
	fmt.Printf("Renamed '%s' to '%s'\n", oldName, newName)
}

func handleDeleteAlbum(mgr *photos.Manager, name string) {
	deleted, err := mgr.DeleteAlbum(name)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !deleted {
		fmt.Printf("No album named '%s'\n", name)
		return
	}
	fmt.Printf("Deleted album '%s'\n", name)
}

// ---------------------------------------------------------------------------
// Album session: photos
// ---------------------------------------------------------------------------

func albumSession(sc *bufio.Scanner, mgr *photos.Manager, album *photos.Album) {
	fmt.Printf("\nOpened '%s' (%d photos).\n", album.Name(), album.Count())
	fmt.Println("Commands: list, view <n>, add <path>, remove <n>, caption <n>,")
	fmt.Println("          tag <n>, untag <n>, copy <n> <album>, move <n> <album>, back")

	for {
		line, ok := prompt(sc, fmt.Sprintf("\n%s> ", album.Name()))
		if !ok {
			return
		}
		cmd, arg, _ := strings.Cut(line, " ")

		switch cmd {
		case "list":
			handleListPhotos(album)
		case "view":
			if p := photoAt(album, arg); p != nil {
				handleViewPhoto(p)
			}
		case "add":
			handleAddPhoto(mgr, album, arg)
		case "remove":
			if p := photoAt(album, arg); p != nil {
				handleRemovePhoto(mgr, album, p)
			}
		case "caption":
			if p := photoAt(album, arg); p != nil {
				handleCaption(sc, mgr, p)
			}
		case "tag":
			if p := photoAt(album, arg); p != nil {
				handleAddTag(sc, mgr, p)
			}
		case "untag":
			if p := photoAt(album, arg); p != nil {
				handleRemoveTag(sc, mgr, p)
			}
		case "copy", "move":
			index, dest, found := strings.Cut(arg, " ")
			if !found {
				fmt.Printf("Usage: %s <n> <album>\n", cmd)
				continue
			}
			if p := photoAt(album, index); p != nil {
				handleCopyMove(mgr, album, p, dest, cmd == "move")
			}
		case "back":
			return
		case "":
		default:
			fmt.Println("Unknown command.")
		}

		// A move may have emptied the album; a removed album name would
		// leave the session pointing at nothing useful.
		if mgr.CurrentUser().Album(album.Name()) == nil {
			return
		}
	}
}

// photoAt resolves a 1-based index argument against the album.
func photoAt(album *photos.Album, arg string) *photos.Photo {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > album.Count() {
		fmt.Printf("Pick a photo number between 1 and %d\n", album.Count())
		return nil
	}
	return album.PhotoAt(n - 1)
}

func handleListPhotos(album *photos.Album) {
	if album.Count() == 0 {
		fmt.Println("Album is empty. Use 'add <path>' to import a photo.")
		return
	}
	fmt.Printf("%-4s %-30s %-18s %s\n", "#", "File", "Taken", "Caption")
	fmt.Println(strings.Repeat("-", 80))
	for i, p := range album.Photos() {
		fmt.Printf("%-4d %-30s %-18s %s\n",
			i+1, p.FileName(), p.TakenAt().Format(dateLayout), p.Caption())
	}
}

func handleViewPhoto(p *photos.Photo) {
	fmt.Printf("Path:    %s\n", p.Path())
	fmt.Printf("Taken:   %s\n", p.TakenAt().Format(dateLayout))
	fmt.Printf("Caption: %s\n", p.Caption())
	tags := p.Tags()
	if len(tags) == 0 {
		fmt.Println("Tags:    none")
		return
	}
	rendered := make([]string, len(tags))
	for i, t := range tags {
		rendered[i] = t.String()
	}
	fmt.Printf("Tags:    %s\n", strings.Join(rendered, ", "))
}

func handleAddPhoto(mgr *photos.Manager, album *photos.Album, path string) {
	if !photos.IsImageFile(path) {
		fmt.Println("Not a supported image (bmp, gif, jpeg, jpg, png).")
		return
	}
	photo, err := photos.ImportPhoto(path)
	if err != nil {
		fmt.Printf("Error importing photo: %v\n", err)
		return
	}
	added, err := mgr.AddPhotoToAlbum(album.Name(), photo)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !added {
		fmt.Println("That photo is already in this album.")
		return
	}
	fmt.Printf("Added %s (taken %s)\n", photo.FileName(), photo.TakenAt().Format(dateLayout))
}

func handleRemovePhoto(mgr *photos.Manager, album *photos.Album, p *photos.Photo) {
	removed, err := mgr.RemovePhotoFromAlbum(album.Name(), p)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if removed {
		fmt.Printf("Removed %s\n", p.FileName())
	}
}

func handleCaption(sc *bufio.Scanner, mgr *photos.Manager, p *photos.Photo) {
	caption, ok := prompt(sc, "New caption: ")
	if !ok {
		return
	}
	if err := mgr.SetCaption(p, caption); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Caption updated.")
}

func handleAddTag(sc *bufio.Scanner, mgr *photos.Manager, p *photos.Photo) {
	tagType, ok := prompt(sc, "Tag type (e.g. person, location): ")
	if !ok {
		return
	}
	value, ok := prompt(sc, "Tag value: ")
	if !ok {
		return
	}
	added, err := mgr.AddTag(p, photos.NewTag(tagType, value))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !added {
		fmt.Println("That tag is already on the photo.")
		return
	}
	fmt.Printf("Tagged %s\n", photos.NewTag(tagType, value))
}

func handleRemoveTag(sc *bufio.Scanner, mgr *photos.Manager, p *photos.Photo) {
	tags := p.Tags()
	if len(tags) == 0 {
		fmt.Println("Photo has no tags.")
		return
	}
	for i, t := range tags {
		fmt.Printf("%d. %s\n", i+1, t)
	}
	arg, ok := prompt(sc, "Tag number to remove: ")
	if !ok {
		return
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(tags) {
		fmt.Println("Invalid tag number.")
		return
	}
	if _, err := mgr.RemoveTag(p, tags[n-1]); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Removed %s\n", tags[n-1])
}

func handleCopyMove(mgr *photos.Manager, album *photos.Album, p *photos.Photo, dest string, move bool) {
	verb := "copy"
	if move {
		verb = "move"
	}
	if mgr.CurrentUser().Album(dest) == nil {
		fmt.Printf("No album named '%s'\n", dest)
		return
	}

	var done bool
	var err error
	if move {
		done, err = mgr.MovePhoto(album.Name(), dest, p)
	} else {
		done, err = mgr.CopyPhoto(album.Name(), dest, p)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !done {
		fmt.Printf("Cannot %s: '%s' already contains that photo.\n", verb, dest)
		return
	}
	fmt.Printf("Photo %sd to '%s'\n", verb, dest)
}

// ---------------------------------------------------------------------------
// Search session
// ---------------------------------------------------------------------------

func searchSession(sc *bufio.Scanner, mgr *photos.Manager) {
	all := mgr.CurrentUser().AllPhotos()
	fmt.Printf("\nSearching %d photo(s) across all albums.\n", len(all))
	fmt.Println("Modes: date, tag, and, or (two-tag), types, values, back")

	for {
		mode, ok := prompt(sc, "\nsearch> ")
		if !ok {
			return
		}

		var results []*photos.Photo
		switch mode {
		case "date":
			results = runDateSearch(sc, all)
		case "tag":
			tag, ok := readTag(sc, "")
			if !ok {
				continue
			}
			results = photos.ByTag(all, tag.Type, tag.Value)
		case "and", "or":
			first, ok := readTag(sc, "first ")
			if !ok {
				continue
			}
			second, ok := readTag(sc, "second ")
			if !ok {
				continue
			}
			if mode == "and" {
				results = photos.ByTwoTagsAnd(all, first.Type, first.Value, second.Type, second.Value)
			} else {
				results = photos.ByTwoTagsOr(all, first.Type, first.Value, second.Type, second.Value)
			}
		case "types":
			fmt.Println(strings.Join(photos.AllTagTypes(all), ", "))
			continue
		case "values":
			tagType, ok := prompt(sc, "Tag type: ")
			if !ok {
				return
			}
			fmt.Println(strings.Join(photos.TagValues(all, tagType), ", "))
			continue
		case "back":
			return
		case "":
			continue
		default:
			fmt.Println("Unknown mode.")
			continue
		}

		showResults(sc, mgr, results)
	}
}

func runDateSearch(sc *bufio.Scanner, all []*photos.Photo) []*photos.Photo {
	startText, ok := prompt(sc, "Start (YYYY-MM-DD): ")
	if !ok {
		return nil
	}
	endText, ok := prompt(sc, "End (YYYY-MM-DD): ")
	if !ok {
		return nil
	}
	start, err := time.ParseInLocation("2006-01-02", startText, time.Local)
	if err != nil {
		fmt.Println("Invalid start date.")
		return nil
	}
	end, err := time.ParseInLocation("2006-01-02", endText, time.Local)
	if err != nil {
		fmt.Println("Invalid end date.")
		return nil
	}
	// The end day counts in full.
	end = end.Add(24*time.Hour - time.Nanosecond)
	return photos.ByDateRange(all, start, end)
}

func readTag(sc *bufio.Scanner, which string) (photos.Tag, bool) {
	tagType, ok := prompt(sc, fmt.Sprintf("Type of %stag: ", which))
	if !ok {
		return photos.Tag{}, false
	}
	value, ok := prompt(sc, fmt.Sprintf("Value of %stag: ", which))
	if !ok {
		return photos.Tag{}, false
	}
	return photos.NewTag(tagType, value), true
}

func showResults(sc *bufio.Scanner, mgr *photos.Manager, results []*photos.Photo) {
	if len(results) == 0 {
		fmt.Println("No matches.")
		return
	}
	fmt.Printf("%d match(es):\n", len(results))
	for i, p := range results {
		fmt.Printf("%-4d %-30s %-18s %s\n",
			i+1, p.FileName(), p.TakenAt().Format(dateLayout), p.Caption())
	}

	name, ok := prompt(sc, "Save results as album (blank to skip): ")
	if !ok || name == "" {
		return
	}
	created, err := mgr.CreateAlbumFromPhotos(name, results)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if !created {
		fmt.Printf("An album named '%s' already exists\n", name)
		return
	}
	fmt.Printf("Saved %d photo(s) to album '%s'\n", len(results), name)
}
