package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessai/bots"
	"chessai/config"
	"chessai/game"
	"chessai/rules"
)

// Debug font glyph size.
const (
	glyphWidth  = 6
	glyphHeight = 16
	panelWidth  = 260
	evalBar     = 24
)

var (
	screenWidth  int
	screenHeight int
	squareSize   int

	lightSquare = color.RGBA{240, 217, 181, 255}
	darkSquare  = color.RGBA{181, 136, 99, 255}
	lastMoveClr = color.RGBA{205, 210, 106, 160}
	selectClr   = color.RGBA{100, 160, 220, 160}
	targetClr   = color.RGBA{40, 40, 40, 110}
)

type Game struct {
	session      *game.Session
	cfg          config.Config
	pieces       map[chess.Piece]*ebiten.Image
	selected     chess.Square
	dragging     *chess.Piece
	dragX, dragY int
	promotion    []rules.Move
	playerColor  chess.Color
	gameStarted  bool
	boardOffsetX int
	boardOffsetY int
	bots         map[string]bots.ChessBot
	botOrder     []string
	currentBot   string

	botMutex    sync.Mutex
	botThinking bool
	lastErr     string
}

func NewGame(cfg config.Config) *Game {
	screenWidth, screenHeight = ebiten.ScreenSizeInFullscreen()
	screenWidth, screenHeight = screenWidth*3/4, screenHeight*3/4

	boardHeight := screenHeight - 80
	squareSize = boardHeight / 8
	if (screenWidth-panelWidth-evalBar)/8 < squareSize {
		squareSize = (screenWidth - panelWidth - evalBar) / 8
	}

	g := &Game{
		cfg:          cfg,
		pieces:       make(map[chess.Piece]*ebiten.Image),
		bots:         make(map[string]bots.ChessBot),
		selected:     chess.NoSquare,
		boardOffsetX: evalBar + 20,
		boardOffsetY: (screenHeight - squareSize*8) / 2,
	}
	g.createBots()
	g.session = game.NewSession(g.bots[g.currentBot])
	g.session.SetEvaluator(bots.NewEvaluator(cfg.Eval))
	g.loadPieceImages()
	return g
}

// createBots builds one search bot per difficulty plus the random bot.
func (g *Game) createBots() {
	for _, d := range []bots.Difficulty{bots.Easy, bots.Medium, bots.Hard} {
		s := g.cfg.Settings()
		s.Difficulty = d
		g.bots[d.String()] = bots.NewMinimaxBot(s)
	}
	g.bots["random"] = bots.NewRandomBot()
	for name := range g.bots {
		g.botOrder = append(g.botOrder, name)
	}
	sort.Strings(g.botOrder)
	g.currentBot = g.cfg.Difficulty.String()
	if strings.EqualFold(g.cfg.Bot, "random") {
		g.currentBot = "random"
	}
}

// loadPieceImages renders each piece as its FEN letter scaled to a square.
func (g *Game) loadPieceImages() {
	for _, p := range []chess.Piece{
		chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
		chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
	} {
		glyph := ebiten.NewImage(glyphWidth+2, glyphHeight)
		ebitenutil.DebugPrintAt(glyph, strings.ToUpper(p.Type().String()), 1, 0)

		img := ebiten.NewImage(squareSize, squareSize)
		op := &ebiten.DrawImageOptions{}
		scale := float64(squareSize) * 0.6 / glyphHeight
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(squareSize)/2-float64(glyphWidth+2)*scale/2, float64(squareSize)*0.2)
		if p.Color() == chess.Black {
			op.ColorScale.Scale(0.1, 0.1, 0.1, 1)
		}
		img.DrawImage(glyph, op)
		g.pieces[p] = img
	}
}

func (g *Game) Update() error {
	if !g.gameStarted {
		g.updateMenu()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.gameStarted = false
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleBot()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) && !g.thinking() {
		g.undo()
	}
	if g.thinking() || g.session.Over() || g.session.Board().Turn() != g.playerColor {
		return nil
	}

	if len(g.promotion) > 0 {
		g.updatePromotion()
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if sq, ok := g.squareAt(ebiten.CursorPosition()); ok {
			piece := g.session.Board().Piece(sq)
			if piece != chess.NoPiece && piece.Color() == g.playerColor {
				g.selected = sq
				g.dragging = &piece
			}
		}
	}
	if g.dragging != nil {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
		if target, ok := g.squareAt(ebiten.CursorPosition()); ok {
			moves := g.session.MovesBetween(g.selected, target)
			switch {
			case len(moves) == 1:
				g.play(moves[0])
			case len(moves) > 1:
				g.promotion = moves
			}
		}
		g.selected = chess.NoSquare
		g.dragging = nil
	}
	return nil
}

func (g *Game) updateMenu() {
	for key, d := range map[ebiten.Key]bots.Difficulty{
		ebiten.KeyDigit1: bots.Easy,
		ebiten.KeyDigit2: bots.Medium,
		ebiten.KeyDigit3: bots.Hard,
	} {
		if inpututil.IsKeyJustPressed(key) {
			g.selectBot(d.String())
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.selectBot("random")
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		btnWidth := 200
		btnHeight := 60
		btnY := screenHeight/2 + 100

		if y > btnY && y < btnY+btnHeight {
			if x > screenWidth/2-btnWidth-20 && x < screenWidth/2-20 {
				g.playerColor = chess.White
				g.startGame()
			} else if x > screenWidth/2+20 && x < screenWidth/2+20+btnWidth {
				g.playerColor = chess.Black
				g.startGame()
			}
		}
	}
}

func (g *Game) updatePromotion() {
	for key, promo := range map[ebiten.Key]chess.PieceType{
		ebiten.KeyQ: chess.Queen,
		ebiten.KeyR: chess.Rook,
		ebiten.KeyB: chess.Bishop,
		ebiten.KeyN: chess.Knight,
	} {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		for _, m := range g.promotion {
			if m.Promo == promo {
				g.promotion = nil
				g.play(m)
				return
			}
		}
	}
}

func (g *Game) squareAt(x, y int) (chess.Square, bool) {
	x -= g.boardOffsetX
	y -= g.boardOffsetY
	if x < 0 || x >= squareSize*8 || y < 0 || y >= squareSize*8 {
		return chess.NoSquare, false
	}
	file, rank := x/squareSize, 7-y/squareSize
	if g.playerColor == chess.Black {
		file, rank = 7-file, 7-rank
	}
	return chess.Square(file + rank*8), true
}

// screenPos is the top-left corner of a square on screen.
func (g *Game) screenPos(sq chess.Square) (int, int) {
	file, rank := int(sq.File()), int(sq.Rank())
	if g.playerColor == chess.Black {
		file, rank = 7-file, 7-rank
	}
	return g.boardOffsetX + file*squareSize, g.boardOffsetY + (7-rank)*squareSize
}

func (g *Game) play(m rules.Move) {
	if err := g.session.Play(m); err != nil {
		log.Warn().Err(err).Str("move", m.String()).Msg("player-move-rejected")
		return
	}
	g.startBot()
}

// undo takes back the player's last move and the reply to it.
func (g *Game) undo() {
	if err := g.session.Undo(); err != nil {
		log.Warn().Err(err).Msg("undo")
		return
	}
	g.promotion = nil
	g.selected = chess.NoSquare
	g.dragging = nil
	if g.session.Board().Turn() != g.playerColor {
		g.startBot()
	}
}

func (g *Game) selectBot(name string) {
	if _, ok := g.bots[name]; !ok {
		return
	}
	g.currentBot = name
	g.session.SetBot(g.bots[name])
	log.Info().Str("bot", g.bots[name].Name()).Msg("bot-selected")
}

func (g *Game) cycleBot() {
	for i, name := range g.botOrder {
		if name == g.currentBot {
			g.selectBot(g.botOrder[(i+1)%len(g.botOrder)])
			return
		}
	}
}

func (g *Game) startGame() {
	g.session.Reset()
	g.gameStarted = true
	g.promotion = nil
	if g.playerColor == chess.Black {
		g.startBot()
	}
}

func (g *Game) thinking() bool {
	g.botMutex.Lock()
	defer g.botMutex.Unlock()
	return g.botThinking
}

func (g *Game) startBot() {
	if g.session.Over() {
		return
	}
	g.botMutex.Lock()
	g.botThinking = true
	g.botMutex.Unlock()
	go g.makeBotMove()
}

func (g *Game) makeBotMove() {
	defer func() {
		g.botMutex.Lock()
		g.botThinking = false
		g.botMutex.Unlock()
	}()

	m, err := g.session.BotMove()
	g.botMutex.Lock()
	defer g.botMutex.Unlock()
	if err != nil {
		g.lastErr = err.Error()
		log.Error().Err(err).Msg("bot-move-failed")
		return
	}
	g.lastErr = ""
	log.Info().Str("move", m.String()).Msg("bot-move")
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.gameStarted {
		g.drawMenu(screen)
		return
	}

	b := g.session.Board()
	last, hasLast := g.session.LastMove()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		x, y := g.screenPos(sq)
		clr := lightSquare
		if (int(sq.File())+int(sq.Rank()))%2 == 0 {
			clr = darkSquare
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(squareSize), float32(squareSize), clr, false)
		if hasLast && (sq == last.From || sq == last.To) {
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(squareSize), float32(squareSize), lastMoveClr, false)
		}
		if sq == g.selected {
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(squareSize), float32(squareSize), selectClr, false)
		}
	}

	if g.selected != chess.NoSquare {
		for _, m := range b.LegalMoves() {
			if m.From != g.selected {
				continue
			}
			x, y := g.screenPos(m.To)
			half := float32(squareSize) / 2
			vector.DrawFilledCircle(screen, float32(x)+half, float32(y)+half, half/4, targetClr, true)
		}
	}

	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := b.Piece(sq)
		if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
			continue
		}
		x, y := g.screenPos(sq)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(x), float64(y))
		screen.DrawImage(g.pieces[piece], op)
	}

	if g.dragging != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.dragX)-float64(squareSize)/2, float64(g.dragY)-float64(squareSize)/2)
		screen.DrawImage(g.pieces[*g.dragging], op)
	}

	g.drawEvalBar(screen)
	g.drawPanel(screen, b)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Chess AI", screenWidth/2-30, screenHeight/2-120)
	ebitenutil.DebugPrintAt(screen, "Opponent: "+g.bots[g.currentBot].Name(), screenWidth/2-120, screenHeight/2-80)
	ebitenutil.DebugPrintAt(screen, "1 easy  2 medium  3 hard  R random", screenWidth/2-120, screenHeight/2-50)
	ebitenutil.DebugPrintAt(screen, "Choose your colour:", screenWidth/2-60, screenHeight/2)

	vector.DrawFilledRect(screen, float32(screenWidth/2-220), float32(screenHeight/2+100), 200, 60, color.RGBA{200, 200, 200, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Play white", screenWidth/2-150, screenHeight/2+122)

	vector.DrawFilledRect(screen, float32(screenWidth/2+20), float32(screenHeight/2+100), 200, 60, color.RGBA{50, 50, 50, 255}, false)
	ebitenutil.DebugPrintAt(screen, "Play black", screenWidth/2+90, screenHeight/2+122)
}

// drawEvalBar fills the bar from the bottom in White's share of the score.
func (g *Game) drawEvalBar(screen *ebiten.Image) {
	const span = 1000
	score := g.session.Eval()
	if score > span {
		score = span
	} else if score < -span {
		score = -span
	}
	height := float32(squareSize * 8)
	white := height * float32(score+span) / (2 * span)
	x, y := float32(10), float32(g.boardOffsetY)
	vector.DrawFilledRect(screen, x, y, evalBar-10, height, color.RGBA{40, 40, 40, 255}, false)
	if g.playerColor == chess.Black {
		vector.DrawFilledRect(screen, x, y, evalBar-10, white, color.White, false)
	} else {
		vector.DrawFilledRect(screen, x, y+height-white, evalBar-10, white, color.White, false)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, b rules.Board) {
	x := g.boardOffsetX + squareSize*8 + 20
	y := g.boardOffsetY

	status := "Your move"
	switch {
	case g.session.Over():
		outcome, method := g.session.Outcome()
		status = fmt.Sprintf("Game over: %s %s", b.Status(), outcome)
		if method != chess.NoMethod {
			status = fmt.Sprintf("Game over: %s (%s)", outcome, method)
		}
	case g.thinking():
		status = "Bot is thinking..."
	case len(g.promotion) > 0:
		status = "Promote: Q R B N"
	case b.Turn() != g.playerColor:
		status = "Bot to move"
	}
	ebitenutil.DebugPrintAt(screen, status, x, y)
	ebitenutil.DebugPrintAt(screen, g.bots[g.currentBot].Name()+"  [Tab] bot  [U] undo", x, y+20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Eval: %+d", g.session.Eval()), x, y+40)

	g.botMutex.Lock()
	if g.lastErr != "" {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr, x, y+60)
	}
	g.botMutex.Unlock()

	ebitenutil.DebugPrintAt(screen, "Captured white: "+pieceList(g.session.Captured(chess.White)), x, y+90)
	ebitenutil.DebugPrintAt(screen, "Captured black: "+pieceList(g.session.Captured(chess.Black)), x, y+110)

	history := g.session.History()
	rows := (squareSize*8 - 160) / glyphHeight
	first := 0
	if n := (len(history) + 1) / 2; n > rows {
		first = (n - rows) * 2
	}
	for i := first; i < len(history); i += 2 {
		line := fmt.Sprintf("%3d. %s", i/2+1, history[i])
		if i+1 < len(history) {
			line += "  " + history[i+1].String()
		}
		ebitenutil.DebugPrintAt(screen, line, x, y+140+(i-first)/2*glyphHeight)
	}
}

func pieceList(pieces []chess.Piece) string {
	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteString(p.Type().String())
	}
	return sb.String()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	configFile := flag.String("config", "", "YAML engine config")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatal().Err(err).Msg("load-config")
		}
	}
	zerolog.SetGlobalLevel(cfg.Level())

	g := NewGame(cfg)
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Chess AI")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("run-game")
	}
}
