// Package main provides localization for the deckshow CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// App
		"Export rendered slide decks to PDF, PNG, PPTX, Markdown, or MP4": "レンダリング済みスライドをPDF、PNG、PPTX、Markdown、MP4へエクスポート",

		// Commands
		"Export a deck once and exit":       "デッキを一度エクスポートして終了",
		"Run the async export job service":  "非同期エクスポートジョブサービスを起動",
		"Show version information":          "バージョン情報を表示",
		"deckshow version %s":               "deckshow バージョン %s",

		// Common flags
		"Base URL of the slide server":                                 "スライドサーバーのベースURL",
		"Deck manifest YAML with per-slide metadata":                   "スライドごとのメタデータを持つデッキマニフェストYAML",
		"Slide count when no manifest is available":                    "マニフェストがない場合のスライド枚数",
		"Path to the browser executable (falls back to CHROME_PATH env)": "ブラウザ実行ファイルのパス（CHROME_PATH環境変数にフォールバック）",
		"Log level (debug, info, warn, error)":                         "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                      "全てのログ出力を抑制",

		// Export flags
		"Output format (pdf, png, pptx, md, mp4)":                           "出力フォーマット（pdf, png, pptx, md, mp4）",
		"Output file or directory path":                                     "出力ファイルまたはディレクトリのパス",
		"Slide range (e.g. 1-3,5 or last)":                                  "スライド範囲（例: 1-3,5 や last）",
		"Slide width in pixels":                                             "スライドの幅（ピクセル）",
		"Slide height in pixels":                                            "スライドの高さ（ピクセル）",
		"Export in dark mode":                                               "ダークモードでエクスポート",
		"Slide server routing (history or hash)":                            "スライドサーバーのルーティング（history または hash）",
		"Export every click state as its own page":                          "クリック状態ごとに1ページとしてエクスポート",
		"Render slides one navigation at a time":                            "スライドを1枚ずつナビゲーションしてレンダリング",
		"Device scale factor of raster output":                              "ラスタ出力のデバイススケール係数",
		"Transparent background for PNG output":                             "PNG出力の背景を透過",
		"Navigation timeout in milliseconds":                                "ナビゲーションのタイムアウト（ミリ秒）",
		"Extra settle delay per slide in milliseconds":                      "スライドごとの追加待機時間（ミリ秒）",
		"Navigation settle condition (networkidle, load, domcontentloaded, none)": "ナビゲーションの完了条件（networkidle, load, domcontentloaded, none）",
		"Attach a table-of-contents outline to the PDF":                     "PDFに目次アウトラインを付与",
		"Dwell per step in milliseconds (mp4)":                              "ステップごとの静止時間（ミリ秒、mp4）",
		"Frames per second (mp4, 1-60)":                                     "フレームレート（mp4、1-60）",
		"Video frame size as WxH (mp4)":                                     "動画フレームサイズ（WxH形式、mp4）",
		"Slow in-page motion by this factor while recording (mp4)":          "記録中のページ内アニメーションをこの係数で減速（mp4）",
		"Run browser in non-headless mode":                                  "ブラウザを非ヘッドレスモードで実行",
		"Enable debug output":                                               "デバッグ出力を有効化",
		"Directory for debug output":                                        "デバッグ出力のディレクトリ",

		// Serve flags
		"Address to bind to":               "バインドするアドレス",
		"Port to listen on":                "待ち受けポート",
		"Mount all routes under this path": "全ルートをこのパス配下にマウント",
		"Directory for job artifacts":      "ジョブ成果物のディレクトリ",

		// Runtime messages
		"Output saved to %s":                "出力を %s に保存しました",
		"Export finished with %d warnings":  "エクスポートは %d 件の警告付きで完了しました",
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",
		"either --manifest or --slides is required": "--manifest または --slides のいずれかが必要です",

		// Orchestrator messages
		"Exporting %s from %s":                 "%s を %s からエクスポート中",
		"Failed to launch browser: %s":         "ブラウザの起動に失敗しました: %s",
		"Browser close failed: %s":             "ブラウザのクローズに失敗しました: %s",
		"Export failed: %s":                    "エクスポートに失敗しました: %s",
		"Exported %d pages to %s":              "%d ページを %s にエクスポートしました",
		"Recording failed: %s":                 "記録に失敗しました: %s",
		"Could not probe video duration: %s":   "動画の再生時間を取得できませんでした: %s",
		"Recorded %d frames over %d steps to %s": "%d フレーム（%d ステップ）を %s に記録しました",
	})
}
