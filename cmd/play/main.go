package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/dungeonkeeper/dm-engine/internal/apply"
	"github.com/dungeonkeeper/dm-engine/internal/config"
	"github.com/dungeonkeeper/dm-engine/internal/content"
	"github.com/dungeonkeeper/dm-engine/internal/dice"
	"github.com/dungeonkeeper/dm-engine/internal/id"
	"github.com/dungeonkeeper/dm-engine/internal/memory"
	"github.com/dungeonkeeper/dm-engine/internal/modelclient"
	"github.com/dungeonkeeper/dm-engine/internal/orchestrator"
	"github.com/dungeonkeeper/dm-engine/internal/rules"
	"github.com/dungeonkeeper/dm-engine/internal/store"
	"github.com/dungeonkeeper/dm-engine/internal/tools"
	"github.com/dungeonkeeper/dm-engine/internal/world"
)

func main() {
	var (
		sessionID = flag.String("session", "default", "session id used for store persistence")
		savePath  = flag.String("save", "", "file to save the session to on exit and autosave (optional)")
		loadPath  = flag.String("load", "", "save file to resume from (optional)")
		charName  = flag.String("name", "Adventurer", "player character name")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	provider := buildContentProvider(cfg)
	repo := buildRepository(cfg)

	gen := id.NewGoogleUUIDGenerator()
	w := world.New(defaultCharacter(*charName))
	mem := memory.New(gen)

	engine := rules.NewEngine()
	engine.Content = provider
	engine.Roller = dice.NewRealRoller()

	applier := apply.NewApplier()
	applier.Content = provider
	applier.Gen = gen

	ocfg := orchestrator.DefaultConfig()
	ocfg.NarrativeModel = cfg.Model.Model
	ocfg.FastModel = cfg.Model.Model

	sess := orchestrator.New(w, mem, modelclient.NewAnthropicClientWithKey(cfg.Model.APIKey),
		tools.NewRegistry(), engine, applier, gen, ocfg)

	if *loadPath != "" {
		if err := sess.Load(*loadPath); err != nil {
			log.Fatalf("Failed to load save %q: %v", *loadPath, err)
		}
		log.Printf("Resumed session from %s", *loadPath)
	} else if saved, err := repo.Load(*sessionID); err == nil {
		if err := sess.Restore(saved); err != nil {
			log.Fatalf("Failed to restore session %q: %v", *sessionID, err)
		}
		log.Printf("Resumed session %q from store", *sessionID)
	}

	c := cron.New()
	if cfg.Autosave.Enabled {
		_, err := c.AddFunc(cfg.Autosave.CronSpec, func() {
			if err := repo.Save(*sessionID, sess.Snapshot()); err != nil {
				log.Printf("Autosave failed: %v", err)
				return
			}
			if *savePath != "" {
				if err := sess.Save(*savePath); err != nil {
					log.Printf("Autosave to %s failed: %v", *savePath, err)
				}
			}
		})
		if err != nil {
			log.Fatalf("Invalid autosave schedule %q: %v", cfg.Autosave.CronSpec, err)
		}
		c.Start()
		defer c.Stop()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	fmt.Println("The session begins. Describe what you do. (/save, /quit)")
	fmt.Print("> ")

	for {
		select {
		case <-stop:
			shutdown(sess, repo, *sessionID, *savePath)
			return
		case line, ok := <-lines:
			if !ok {
				shutdown(sess, repo, *sessionID, *savePath)
				return
			}
			line = strings.TrimSpace(line)
			switch {
			case line == "":
			case line == "/quit":
				shutdown(sess, repo, *sessionID, *savePath)
				return
			case line == "/save":
				if err := repo.Save(*sessionID, sess.Snapshot()); err != nil {
					log.Printf("Save failed: %v", err)
				} else {
					fmt.Println("Saved.")
				}
			default:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				resp, err := sess.PlayerAction(ctx, line)
				cancel()
				if err != nil {
					log.Printf("Turn failed: %v", err)
					break
				}
				fmt.Println(resp.Narrative)
				for _, e := range resp.Effects {
					fmt.Printf("  * %s\n", e.Kind)
				}
			}
			fmt.Print("> ")
		}
	}
}

func shutdown(sess *orchestrator.Session, repo store.Repository, sessionID, savePath string) {
	if err := repo.Save(sessionID, sess.Snapshot()); err != nil {
		log.Printf("Final save failed: %v", err)
	}
	if savePath != "" {
		if err := sess.Save(savePath); err != nil {
			log.Printf("Final save to %s failed: %v", savePath, err)
		}
	}
	log.Println("Session saved. Farewell, adventurer.")
}

func buildContentProvider(cfg *config.Config) content.Provider {
	if cfg.Content.BaseURL == "" {
		return content.NewTableProvider()
	}
	provider, err := content.NewDND5EAPIProvider(&http.Client{Timeout: 30 * time.Second})
	if err != nil {
		log.Printf("Content API unavailable, using built-in tables: %v", err)
		return content.NewTableProvider()
	}
	return provider
}

func buildRepository(cfg *config.Config) store.Repository {
	if cfg.Store.UseMemory {
		return store.NewMemory()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Store.RedisAddr,
		Password: cfg.Store.RedisPassword,
		DB:       cfg.Store.RedisDB,
	})
	return store.NewRedis(client, 0)
}

// defaultCharacter is the out-of-the-box level-1 fighter a fresh session
// starts with when no save is loaded. Character creation wizards are a
// separate concern; this keeps the binary playable immediately.
func defaultCharacter(name string) *world.Character {
	return &world.Character{
		Name:       name,
		Race:       "Human",
		Background: "Soldier",
		Abilities: world.AbilityScores{
			world.Strength: 16, world.Dexterity: 13, world.Constitution: 14,
			world.Intelligence: 10, world.Wisdom: 12, world.Charisma: 8,
		},
		Level:      1,
		HP:         world.HitPoints{Current: 12, Maximum: 12},
		HitDice:    []world.HitDiceEntry{{Sides: 10, Total: 1, Remaining: 1}},
		Speed:      30,
		Classes:    []world.ClassEntry{{Class: "fighter", Level: 1}},
		Features: []*world.Feature{
			{Name: "Second Wind", Recharge: world.RecoveryShortRest, Current: 1, Maximum: 1},
		},
		SkillProficiencies: map[string]bool{"athletics": true, "intimidation": true},
		SaveProficiencies:  map[world.Ability]bool{world.Strength: true, world.Constitution: true},
		Inventory: world.Inventory{
			Items: []*world.ItemStack{
				{Name: "Longsword", Type: world.ItemWeapon, Quantity: 1},
				{Name: "Shield", Type: world.ItemShield, Quantity: 1},
				{Name: "Chain Mail", Type: world.ItemArmor, Quantity: 1},
				{Name: "Potion of Healing", Type: world.ItemPotion, Quantity: 2},
			},
			Gold: 10,
		},
	}
}
