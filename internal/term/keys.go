package term

// Special-key codes delivered by Handle.ReadKey when keypad translation is
// enabled. The numbering follows the traditional terminal key-code layout:
// codes are small integers above the byte range, and function keys occupy a
// contiguous block starting at KeyF0.
const (
	KeyDown      = 0o402
	KeyUp        = 0o403
	KeyLeft      = 0o404
	KeyRight     = 0o405
	KeyHome      = 0o406
	KeyBackspace = 0o407

	// KeyF0 is the function-key base; function key n is KeyF0+n.
	KeyF0 = 0o410

	KeyDL        = 0o510
	KeyIL        = 0o511
	KeyDC        = 0o512
	KeyIC        = 0o513
	KeyEIC       = 0o514
	KeyClear     = 0o515
	KeyEOS       = 0o516
	KeyEOL       = 0o517
	KeySF        = 0o520
	KeySR        = 0o521
	KeyNPage     = 0o522
	KeyPPage     = 0o523
	KeySTab      = 0o524
	KeyCTab      = 0o525
	KeyCATab     = 0o526
	KeyEnter     = 0o527
	KeyPrint     = 0o532
	KeyLL        = 0o533
	KeyA1        = 0o534
	KeyA3        = 0o535
	KeyB2        = 0o536
	KeyC1        = 0o537
	KeyC3        = 0o540
	KeyBTab      = 0o541
	KeyBeg       = 0o542
	KeyCancel    = 0o543
	KeyClose     = 0o544
	KeyCommand   = 0o545
	KeyCopy      = 0o546
	KeyCreate    = 0o547
	KeyEnd       = 0o550
	KeyExit      = 0o551
	KeyFind      = 0o552
	KeyHelp      = 0o553
	KeyMark      = 0o554
	KeyMessage   = 0o555
	KeyMove      = 0o556
	KeyNext      = 0o557
	KeyOpen      = 0o560
	KeyOptions   = 0o561
	KeyPrevious  = 0o562
	KeyRedo      = 0o563
	KeyReference = 0o564
	KeyRefresh   = 0o565
	KeyReplace   = 0o566
	KeyRestart   = 0o567
	KeyResume    = 0o570
	KeySave      = 0o571
	KeySelect    = 0o601
	KeySuspend   = 0o627
	KeyUndo      = 0o630
)

// F returns the code for function key n.
func F(n int) int {
	return KeyF0 + n
}
