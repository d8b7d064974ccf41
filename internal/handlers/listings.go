package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/mmada170699-cpu/RiyadhRE/internal/moderation"
	"github.com/mmada170699-cpu/RiyadhRE/internal/store"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// The bot goroutine connects after the HTTP routes are registered, so the
// handlers pick up the Telegram client and token through this guarded state.
var (
	apiMu     sync.RWMutex
	apiStore  *store.Listings
	apiLedger *moderation.Ledger
	apiBot    *tgbotapi.BotAPI
	apiToken  string
)

// InitAPI hands the HTTP handlers their backing stores. Call once before
// registering routes.
func InitAPI(listings *store.Listings, ledger *moderation.Ledger) {
	apiMu.Lock()
	defer apiMu.Unlock()
	apiStore = listings
	apiLedger = ledger
}

func setTelegramClient(bot *tgbotapi.BotAPI, token string) {
	apiMu.Lock()
	defer apiMu.Unlock()
	apiBot = bot
	apiToken = token
}

func telegramClient() (*tgbotapi.BotAPI, string) {
	apiMu.RLock()
	defer apiMu.RUnlock()
	return apiBot, apiToken
}

// GetListings serves the approved-listing search. Query parameters: deal,
// min_price, max_price, district; all optional.
func GetListings(c *gin.Context) {
	var f store.SearchFilter
	f.DealKind = c.Query("deal")
	f.District = c.Query("district")
	if v := c.Query("min_price"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		f.MinPrice = n
	}
	if v := c.Query("max_price"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		f.MaxPrice = n
	}

	results, err := apiStore.Search(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load listings"})
		return
	}

	response := make([]ListingView, 0, len(results))
	for _, l := range results {
		response = append(response, buildListingView(l))
	}
	c.JSON(http.StatusOK, response)
}

// GetListingPhoto proxies the first photo of an approved listing from
// Telegram's file API so the bot token never reaches the client.
func GetListingPhoto(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	l, err := apiStore.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if len(l.PhotoIDs) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	bot, token := telegramClient()
	if bot == nil || token == "" {
		c.Status(http.StatusNotFound)
		return
	}

	file, err := bot.GetFile(tgbotapi.FileConfig{FileID: l.PhotoIDs[0]})
	if err != nil || file.FilePath == "" {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to resolve photo"})
		return
	}

	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", token, file.FilePath)
	resp, err := http.Get(url)
	if err != nil || resp.StatusCode != http.StatusOK {
		if resp != nil {
			resp.Body.Close()
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch photo"})
		return
	}
	defer resp.Body.Close()

	for k, values := range resp.Header {
		if len(values) == 0 {
			continue
		}
		switch k {
		case "Content-Type", "Content-Length":
			c.Header(k, values[0])
		}
	}

	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, resp.Body)
}

// CheckOffender reports the violation count for a Telegram user ID.
func CheckOffender(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	count, err := apiLedger.Count(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": id,
		"count":   count,
		"flagged": count > 0,
	})
}
